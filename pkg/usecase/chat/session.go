// Package chat orchestrates one conversation: it classifies each incoming
// message, extracts parameters for function calls, executes them behind
// the registry boundary, and falls back to a role-aware narrative reply
// when no function clears the confidence threshold.
package chat

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/kisanmitra/kisanmitra/pkg/capability"
	"github.com/kisanmitra/kisanmitra/pkg/function"
	"github.com/kisanmitra/kisanmitra/pkg/intent"
	"github.com/kisanmitra/kisanmitra/pkg/model"
	"github.com/kisanmitra/kisanmitra/pkg/repository"
	"github.com/kisanmitra/kisanmitra/pkg/utils/logging"
)

// maxHistory bounds the rolling history the session keeps for context
const maxHistory = 20

// Session processes one conversation strictly sequentially: a message is
// classified, its function (if any) executed, and the outcome folded into
// the rolling history before the next message is accepted.
type Session struct {
	user       *model.UserProfile
	profile    *model.CapabilityProfile
	classifier *intent.Classifier
	extractor  *intent.Extractor
	registry   *function.Registry
	history    []model.Message
	now        func() time.Time
}

// NewInput contains parameters for creating a session. User and Repo are
// required; the rest default to production components.
type NewInput struct {
	User       *model.UserProfile
	Repo       repository.Repository
	Classifier *intent.Classifier
	Extractor  *intent.Extractor
	Registry   *function.Registry
	Env        *function.Env

	// History seeds the rolling context, e.g. when the hosting UI
	// reopens an earlier conversation. The slice is copied; the engine
	// never mutates the caller's list.
	History []model.Message
}

// New creates a chat session for the given user
func New(input NewInput) (*Session, error) {
	if input.User == nil {
		return nil, goerr.New("user profile is required")
	}
	if input.Registry == nil {
		if input.Repo == nil {
			return nil, goerr.New("repository is required")
		}
		input.Registry = function.New(input.Repo, input.Env)
	}
	if input.Classifier == nil {
		input.Classifier = intent.NewClassifier()
	}
	if input.Extractor == nil {
		input.Extractor = intent.NewExtractor()
	}

	history := make([]model.Message, 0, maxHistory)
	history = append(history, input.History...)

	return &Session{
		user:       input.User,
		profile:    capability.For(input.User.Role),
		classifier: input.Classifier,
		extractor:  input.Extractor,
		registry:   input.Registry,
		history:    history,
		now:        time.Now,
	}, nil
}

// Profile returns the capability profile the session operates under
func (s *Session) Profile() *model.CapabilityProfile {
	return s.profile
}

// History returns a copy of the rolling conversation history
func (s *Session) History() []model.Message {
	out := make([]model.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Respond classifies the message and returns either a function_call for
// the caller to execute, or a ready narrative reply. The two-phase split
// lets the caller show progress between classification and completion.
func (s *Session) Respond(ctx context.Context, message string) *model.ChatResponse {
	s.remember(model.MessageRoleUser, message)

	match := s.classifier.Classify(message, s.profile.Functions)
	if match == nil {
		reply := generateReply(s.profile, s.user, message)
		s.remember(model.MessageRoleAssistant, reply)
		return &model.ChatResponse{
			Type:    model.ChatResponseMessage,
			Content: reply,
		}
	}

	logging.From(ctx).Debug("message classified",
		"function", match.Function, "confidence", match.Confidence)

	params := s.extractor.Extract(message, match.Function, s.user, s.history)
	return &model.ChatResponse{
		Type:       model.ChatResponseFunctionCall,
		Function:   match.Function,
		Params:     params,
		Confidence: match.Confidence,
	}
}

// Execute runs a classified function and folds its narrative into the
// conversation. It never returns an error: role violations, validation
// failures, and handler crashes all surface as unsuccessful results.
func (s *Session) Execute(ctx context.Context, fn model.FunctionName, params *model.FunctionParams) *model.FunctionResult {
	var result *model.FunctionResult
	if !s.profile.Allows(fn) {
		logging.From(ctx).Warn("function not in capability profile",
			"function", fn, "role", s.user.Role)
		result = &model.FunctionResult{
			Success: false,
			Message: "That action is not available for your account right now.",
		}
	} else {
		result = s.registry.Execute(ctx, fn, params, s.user)
	}

	s.remember(model.MessageRoleAssistant, result.Message)
	return result
}

// Turn is the folded outcome of one message processed end to end
type Turn struct {
	Response *model.ChatResponse
	Result   *model.FunctionResult
	Reply    string
}

// Send processes a message in one shot: respond, execute on a function
// call, and return the final narrative. Hosts that want an in-progress
// indicator call Respond and Execute separately instead.
func (s *Session) Send(ctx context.Context, message string) *Turn {
	resp := s.Respond(ctx, message)
	turn := &Turn{Response: resp, Reply: resp.Content}

	if resp.Type == model.ChatResponseFunctionCall {
		turn.Result = s.Execute(ctx, resp.Function, resp.Params)
		turn.Reply = turn.Result.Message
	}
	return turn
}

func (s *Session) remember(role model.MessageRole, content string) {
	s.history = append(s.history, model.Message{
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
	})
	if len(s.history) > maxHistory {
		s.history = s.history[len(s.history)-maxHistory:]
	}
}
