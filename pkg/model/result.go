package model

// FunctionResult is what every handler invocation produces. Message is a
// human-readable narrative meant to be shown verbatim in the conversation;
// failures are phrased as recoverable, never as stack traces. The executor
// guarantees a FunctionResult for every accepted invocation: handlers and
// the execution boundary convert errors into success=false results instead
// of propagating them.
type FunctionResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}
