// Package intent turns free-text user messages into classified function
// calls with extracted parameters. Classification is deterministic and
// lexical: every decision traces to one literal trigger phrase and one
// static weight, which keeps the gate in front of side effects auditable.
package intent

import (
	"strings"

	"github.com/kisanmitra/kisanmitra/pkg/model"
)

// MinConfidence is the threshold a candidate must clear to be treated as a
// function call. Messages below it fall through to the response generator.
const MinConfidence = 0.5

// Classifier scores messages against weighted trigger-phrase tables.
// It is pure: identical inputs always yield an identical match or none.
type Classifier struct {
	table []TriggerEntry
}

// NewClassifier creates a classifier over the built-in trigger table
func NewClassifier() *Classifier {
	return &Classifier{table: DefaultTable()}
}

// NewClassifierWithTable creates a classifier over a custom trigger table,
// typically loaded from a YAML override file
func NewClassifierWithTable(table []TriggerEntry) *Classifier {
	return &Classifier{table: table}
}

// Classify scores the message against every allowed function's trigger
// table and returns the best match, or nil when no function clears
// MinConfidence. A function's confidence is the maximum weight over all of
// its matching phrases; ties across functions resolve to the entry
// registered first, so the result is deterministic.
func (c *Classifier) Classify(message string, allowed []model.FunctionName) *model.IntentMatch {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" || len(allowed) == 0 {
		return nil
	}

	allowedSet := make(map[model.FunctionName]bool, len(allowed))
	for _, fn := range allowed {
		allowedSet[fn] = true
	}

	var best *model.IntentMatch
	for _, entry := range c.table {
		if !allowedSet[entry.Function] {
			continue
		}

		confidence := 0.0
		for _, p := range entry.Phrases {
			if p.Weight > confidence && strings.Contains(msg, strings.ToLower(p.Text)) {
				confidence = p.Weight
			}
		}
		if confidence == 0 {
			continue
		}

		// Strict comparison keeps the first-registered entry on ties
		if best == nil || confidence > best.Confidence {
			best = &model.IntentMatch{Function: entry.Function, Confidence: confidence}
		}
	}

	if best == nil || best.Confidence < MinConfidence {
		return nil
	}
	return best
}
