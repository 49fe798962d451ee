package chatbot

import "strings"

type fallbackRule struct {
	keywords []string
	reply    string
}

var fallbackRules = []fallbackRule{
	{
		[]string{"birth", "janm", "जन्म"},
		"For Birth Certificate: Services → Apply → 'Birth Certificate'. Fee: ₹50, 7 days. Required: Hospital birth slip, parents Aadhar card.",
	},
	{
		[]string{"death", "mrityu", "मृत्यू"},
		"For Death Certificate: Services → Apply → 'Death Certificate'. Fee: ₹50, 7 days. Required: Hospital death record.",
	},
	{
		[]string{"income", "aay", "उत्पन्न"},
		"For Income Certificate: Services → Apply → 'Income Certificate'. Fee: ₹30, 10 days. Required: Ration card, salary slip.",
	},
	{
		[]string{"caste", "jati", "जात"},
		"For Caste Certificate: Services → Apply → 'Caste Certificate'. Fee: ₹30, 15 days.",
	},
	{
		[]string{"marriage", "vivah", "विवाह"},
		"For Marriage Certificate: Services → Apply → 'Marriage Certificate'. Fee: ₹100, 7 days.",
	},
	{
		[]string{"track", "status", "follow", "application"},
		"Track your application: Go to 'Track' menu → Enter your Request Number (REQ-XXXXXXXXXX).",
	},
	{
		[]string{"grievance", "complaint", "taqrar", "तक्रार"},
		"To submit a grievance: Go to Grievances → Submit New. Describe your issue and it will be routed to the right department.",
	},
	{
		[]string{"payment", "fee", "pay", "शुल्क"},
		"Payments: After applying for a service, go to Payments → Pay Now. It is a secure mock payment system.",
	},
	{
		[]string{"document", "upload", "file"},
		"To upload documents: Apply for a service first, then upload supporting documents like Aadhar card, ration card, etc.",
	},
	{
		[]string{"hello", "hi", "namaskar", "namaste", "नमस्ते"},
		"नमस्ते! Hello! Welcome to Gram Panchayat Portal. How can I help you today?",
	},
	{
		[]string{"help", "madad", "मदत"},
		"I can help you with:\n1. Apply for certificates (Birth, Income, Caste, Marriage etc.)\n2. Track your applications\n3. Submit grievances/complaints\n4. Payment information\nWhat would you like to know?",
	},
}

const fallbackDefault = "I can help with certificates, tracking applications, grievances, and payments. What do you need help with?"

// FallbackReply answers from a fixed keyword table. First matching rule
// wins; deterministic for a given message.
func FallbackReply(message string) string {
	msg := strings.ToLower(message)
	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(msg, kw) {
				return rule.reply
			}
		}
	}
	return fallbackDefault
}
