// Package triage classifies grievances by keyword matching. The
// classifier is pure and deterministic so the assigned category and
// priority can be stored immutably at submission time.
package triage

import (
	"strings"

	"github.com/gramseva/gramseva-backend/internal/domain"
)

// CategoryOther is assigned when no keyword set matches.
const CategoryOther = "Other"

type categoryRule struct {
	name     string
	keywords []string
}

// Ordered by priority of assignment: on a tie the earlier category wins.
var categoryRules = []categoryRule{
	{"Water Supply", []string{"water", "pipe", "tap", "pani", "jal", "leakage"}},
	{"Roads & Infrastructure", []string{"road", "pothole", "bridge", "rasta", "street"}},
	{"Sanitation & Waste", []string{"garbage", "waste", "toilet", "sewage", "clean"}},
	{"Electricity", []string{"light", "electricity", "bijli", "power", "transformer"}},
	{"Healthcare", []string{"hospital", "doctor", "health", "medicine", "clinic"}},
	{"Education", []string{"school", "teacher", "education", "student"}},
	{"Land Records", []string{"land", "record", "property", "jamin"}},
	{"Corruption", []string{"bribe", "corrupt", "bhrashtachar", "fraud"}},
	{"Public Safety", []string{"crime", "safety", "police", "accident"}},
}

var urgencyWords = []string{"urgent", "emergency", "death", "accident", "serious", "critical"}

// Result holds the outcome of classifying a grievance.
type Result struct {
	Category string
	Priority domain.Priority
}

// Classify assigns a category and priority from the grievance subject
// and description. The category with the most matching keywords wins;
// if no keyword matches the grievance falls into CategoryOther.
func Classify(subject, description string) Result {
	text := strings.ToLower(subject + " " + description)

	best := CategoryOther
	bestScore := 0
	for _, rule := range categoryRules {
		score := 0
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > bestScore {
			best = rule.name
			bestScore = score
		}
	}

	priority := domain.PriorityNormal
	for _, kw := range urgencyWords {
		if strings.Contains(text, kw) {
			priority = domain.PriorityHigh
			break
		}
	}

	return Result{Category: best, Priority: priority}
}
