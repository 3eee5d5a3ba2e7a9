package intent

import "github.com/kisanmitra/kisanmitra/pkg/model"

// Phrase is one weighted trigger: a literal substring used as evidence for
// an intent. The weight is the confidence assigned when the phrase matches.
type Phrase struct {
	Text   string  `yaml:"text"`
	Weight float64 `yaml:"weight"`
}

// TriggerEntry binds a function to its ordered trigger phrases. The order
// of entries in a table is the registration order used for tie-breaking.
type TriggerEntry struct {
	Function model.FunctionName `yaml:"name"`
	Phrases  []Phrase           `yaml:"phrases"`
}

// defaultTable is the built-in trigger configuration. It is treated as
// immutable; deployments that need different phrasing load an override via
// LoadTriggers instead of mutating this table.
var defaultTable = []TriggerEntry{
	{
		Function: model.FnCreatePayment,
		Phrases: []Phrase{
			{Text: "make a payment", Weight: 0.95},
			{Text: "payment", Weight: 0.9},
			{Text: "pay", Weight: 0.9},
			{Text: "send money", Weight: 0.85},
			{Text: "transfer", Weight: 0.8},
			{Text: "rupees", Weight: 0.6},
		},
	},
	{
		Function: model.FnGetWeatherForecast,
		Phrases: []Phrase{
			{Text: "weather", Weight: 0.9},
			{Text: "forecast", Weight: 0.85},
			{Text: "rain", Weight: 0.7},
			{Text: "temperature", Weight: 0.7},
			{Text: "monsoon", Weight: 0.7},
		},
	},
	{
		Function: model.FnRecordHarvest,
		Phrases: []Phrase{
			{Text: "record my harvest", Weight: 0.95},
			{Text: "harvest", Weight: 0.85},
			{Text: "yield", Weight: 0.7},
			{Text: "crop ready", Weight: 0.7},
		},
	},
	{
		Function: model.FnGenerateQRCode,
		Phrases: []Phrase{
			{Text: "qr code", Weight: 0.95},
			{Text: "qr", Weight: 0.9},
			{Text: "generate code", Weight: 0.7},
			{Text: "label the batch", Weight: 0.65},
		},
	},
	{
		Function: model.FnSendNotification,
		Phrases: []Phrase{
			{Text: "send notification", Weight: 0.95},
			{Text: "send a notification", Weight: 0.95},
			{Text: "notify", Weight: 0.85},
			{Text: "remind", Weight: 0.7},
			{Text: "alert", Weight: 0.6},
		},
	},
	{
		Function: model.FnCheckScheme,
		Phrases: []Phrase{
			{Text: "scheme", Weight: 0.85},
			{Text: "subsidy", Weight: 0.85},
			{Text: "pm-kisan", Weight: 0.9},
			{Text: "eligib", Weight: 0.7},
		},
	},
	{
		Function: model.FnTrackOrder,
		Phrases: []Phrase{
			{Text: "where is my order", Weight: 0.95},
			{Text: "order status", Weight: 0.9},
			{Text: "track", Weight: 0.85},
			{Text: "delivery", Weight: 0.7},
		},
	},
	{
		Function: model.FnRaiseComplaint,
		Phrases: []Phrase{
			{Text: "complaint", Weight: 0.9},
			{Text: "complain", Weight: 0.9},
			{Text: "refund", Weight: 0.75},
			{Text: "issue", Weight: 0.7},
			{Text: "problem", Weight: 0.65},
			{Text: "damaged", Weight: 0.65},
		},
	},
	{
		Function: model.FnCheckInventory,
		Phrases: []Phrase{
			{Text: "inventory", Weight: 0.9},
			{Text: "stock level", Weight: 0.85},
			{Text: "how much stock", Weight: 0.85},
			{Text: "in stock", Weight: 0.7},
		},
	},
	{
		Function: model.FnRecordStockEntry,
		Phrases: []Phrase{
			{Text: "received stock", Weight: 0.9},
			{Text: "stock in", Weight: 0.85},
			{Text: "add stock", Weight: 0.85},
			{Text: "incoming delivery", Weight: 0.7},
		},
	},
	{
		Function: model.FnBroadcastAnnouncement,
		Phrases: []Phrase{
			{Text: "broadcast", Weight: 0.9},
			{Text: "announce", Weight: 0.85},
			{Text: "tell everyone", Weight: 0.8},
		},
	},
}

// DefaultTable returns a copy of the built-in trigger table
func DefaultTable() []TriggerEntry {
	table := make([]TriggerEntry, len(defaultTable))
	copy(table, defaultTable)
	return table
}
