// Package chatbot answers citizen questions about portal services. An
// Anthropic-backed client is used when an API key is configured; every
// failure degrades to a deterministic keyword responder so the citizen
// always gets an answer.
package chatbot

import (
	"context"
	"fmt"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Turn is one prior exchange message supplied by the frontend.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client produces an assistant reply for a citizen message.
type Client interface {
	Complete(ctx context.Context, message string, history []Turn) (string, error)
}

const systemPrompt = `You are a helpful assistant for a Gram Panchayat / Nagar Palika e-governance portal.
Help citizens with services, applications, grievances, payments, and document requirements.
Answer in the language the user writes in (Marathi, Hindi, or English).
Common services: Birth Certificate ₹50/7days, Death Certificate ₹50/7days, Income Certificate ₹30/10days,
Caste Certificate ₹30/15days, Marriage Certificate ₹100/7days, Water Connection ₹500/30days.`

// Keep prompts bounded regardless of what the frontend sends.
const maxHistoryTurns = 6

// AnthropicClient talks to the Claude Messages API.
type AnthropicClient struct {
	client anthropic.Client
	model  string
}

// NewAnthropicClient creates a client for the given API key and model.
func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	return &AnthropicClient{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (c *AnthropicClient) Complete(ctx context.Context, message string, history []Turn) (string, error) {
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	messages := make([]anthropic.MessageParam, 0, len(history)+1)
	for _, turn := range history {
		block := anthropic.NewTextBlock(turn.Content)
		if turn.Role == "user" {
			messages = append(messages, anthropic.NewUserMessage(block))
		} else {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		}
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(message)))

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("assistant api call: %w", err)
	}
	if len(msg.Content) == 0 {
		return "", fmt.Errorf("assistant returned empty response")
	}
	return msg.Content[0].Text, nil
}
