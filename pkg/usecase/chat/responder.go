package chat

import (
	"fmt"
	"strings"

	"github.com/kisanmitra/kisanmitra/pkg/model"
)

// topicReplies maps role-relevant topic keywords to a templated reply.
// Checked in order; first keyword found in the message wins.
type topicReply struct {
	keywords []string
	reply    string
}

var roleTopics = map[model.Role][]topicReply{
	model.RoleFarmer: {
		{
			keywords: []string{"crop", "farming", "soil", "sowing"},
			reply:    "For this season, rotate your crops and test the soil before sowing. Ask me about the weather forecast or government schemes any time.",
		},
		{
			keywords: []string{"price", "market", "mandi"},
			reply:    "Market prices update every morning on the prices screen. You can record a harvest or take a payment right here when you are ready to sell.",
		},
	},
	model.RoleConsumer: {
		{
			keywords: []string{"product", "vegetable", "fruit", "fresh"},
			reply:    "All produce comes straight from registered farms. Browse the catalogue for what is in season, and I can track your order or take a payment here.",
		},
		{
			keywords: []string{"price", "cost"},
			reply:    "Prices follow the daily mandi rates plus delivery. The exact amount shows at checkout before you pay.",
		},
	},
	model.RoleWarehouse: {
		{
			keywords: []string{"storage", "capacity", "cold"},
			reply:    "Storage capacity and cold-room status are on the warehouse dashboard. I can check current stock or record incoming deliveries for you.",
		},
	},
	model.RoleAdmin: {
		{
			keywords: []string{"user", "account", "farmer", "consumer"},
			reply:    "User management lives in the admin console. From here I can send targeted notifications or broadcast an announcement.",
		},
		{
			keywords: []string{"system", "report", "dashboard"},
			reply:    "System reports are generated nightly. I can check inventory across warehouses or publish announcements for you.",
		},
	},
}

var greetingWords = []string{"hello", "hi ", "hey", "namaste", "good morning", "good evening"}

// generateReply produces the fallback narrative for messages that did not
// classify as a function call: a greeting, a topical reply, or a
// clarification that restates the role's capabilities.
func generateReply(profile *model.CapabilityProfile, user *model.UserProfile, message string) string {
	msg := " " + strings.ToLower(strings.TrimSpace(message)) + " "

	for _, g := range greetingWords {
		if strings.Contains(msg, g) {
			return fmt.Sprintf("Hello %s! %s", displayName(user), capabilitySummary(profile))
		}
	}

	for _, topic := range roleTopics[profile.Role] {
		for _, kw := range topic.keywords {
			if strings.Contains(msg, kw) {
				return topic.reply
			}
		}
	}

	return "I didn't quite catch that. " + capabilitySummary(profile)
}

// capabilitySummary restates what the role can ask for
func capabilitySummary(profile *model.CapabilityProfile) string {
	if len(profile.Functions) == 0 {
		return "Please sign in with a recognized account to unlock actions."
	}

	names := make([]string, 0, len(profile.Functions))
	for _, fn := range profile.Functions {
		names = append(names, strings.ReplaceAll(string(fn), "_", " "))
	}
	return "You can ask me to: " + strings.Join(names, ", ") + "."
}

func displayName(user *model.UserProfile) string {
	if user != nil && user.Name != "" {
		return user.Name
	}
	return "there"
}
