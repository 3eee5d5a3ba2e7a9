package model

import "time"

// MessageRole is the author of a single conversation message
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

// Message is one entry of the conversation history supplied by the hosting
// UI layer, ordered oldest to newest. The engine reads the tail for context
// and never mutates the list.
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// FunctionName identifies a side-effecting operation a message can be
// classified into
type FunctionName string

const (
	FnCreatePayment         FunctionName = "create_payment"
	FnGetWeatherForecast    FunctionName = "get_weather_forecast"
	FnRecordHarvest         FunctionName = "record_harvest"
	FnGenerateQRCode        FunctionName = "generate_qr_code"
	FnSendNotification      FunctionName = "send_notification"
	FnCheckScheme           FunctionName = "check_scheme_eligibility"
	FnTrackOrder            FunctionName = "track_order"
	FnRaiseComplaint        FunctionName = "raise_complaint"
	FnCheckInventory        FunctionName = "check_inventory"
	FnRecordStockEntry      FunctionName = "record_stock_entry"
	FnBroadcastAnnouncement FunctionName = "broadcast_announcement"
)

// IntentMatch is the result of classifying a message against the trigger
// tables. Confidence is the static weight of the best matching phrase.
type IntentMatch struct {
	Function   FunctionName
	Confidence float64
}

// RequestContext is a snapshot of the acting user attached to every
// function invocation so handlers have uniform provenance data.
type RequestContext struct {
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Location string `json:"location"`
}

// FunctionParams carries extracted parameters into a handler. Fields holds
// the per-function values; its shape is a contract implicit per function
// name, decoded into the handler's typed input at the execution boundary.
type FunctionParams struct {
	RequesterID string         `json:"requester_id"`
	Context     RequestContext `json:"context"`
	Fields      map[string]any `json:"fields"`
}

// Field returns a named extracted value, or nil if absent
func (p *FunctionParams) Field(key string) any {
	if p == nil || p.Fields == nil {
		return nil
	}
	return p.Fields[key]
}

// ChatResponseType discriminates the two possible orchestrator outcomes
type ChatResponseType string

const (
	ChatResponseFunctionCall ChatResponseType = "function_call"
	ChatResponseMessage      ChatResponseType = "message"
)

// ChatResponse is what the orchestrator hands back to the hosting UI:
// either a classified function call for the caller to execute, or a
// ready-to-display narrative reply.
type ChatResponse struct {
	Type       ChatResponseType `json:"type"`
	Function   FunctionName     `json:"function,omitempty"`
	Params     *FunctionParams  `json:"params,omitempty"`
	Confidence float64          `json:"confidence,omitempty"`
	Content    string           `json:"content,omitempty"`
}
