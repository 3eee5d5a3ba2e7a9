package chat_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/kisanmitra/kisanmitra/pkg/function"
	"github.com/kisanmitra/kisanmitra/pkg/model"
	"github.com/kisanmitra/kisanmitra/pkg/repository"
	"github.com/kisanmitra/kisanmitra/pkg/usecase/chat"
)

var sessionNow = time.Date(2025, time.July, 10, 9, 0, 0, 0, time.UTC)

func newFarmerSession(t *testing.T) (*chat.Session, repository.Repository) {
	t.Helper()
	repo := repository.NewMemory()
	session, err := chat.New(chat.NewInput{
		User: &model.UserProfile{
			ID:       "farmer-1",
			Name:     "Ramesh",
			Role:     model.RoleFarmer,
			Location: "Nashik",
		},
		Repo: repo,
		Env:  function.TestEnv(sessionNow),
	})
	gt.NoError(t, err)
	return session, repo
}

func TestRespondClassifiesFunctionCall(t *testing.T) {
	session, _ := newFarmerSession(t)

	resp := session.Respond(context.Background(), "pay 500 rupees for seeds")
	gt.Equal(t, resp.Type, model.ChatResponseFunctionCall)
	gt.Equal(t, resp.Function, model.FnCreatePayment)
	gt.Equal(t, resp.Confidence, 0.9)
	gt.V(t, resp.Params).NotNil()
	gt.Equal(t, resp.Params.Field("amount_inr"), 500)
	gt.Equal(t, resp.Params.Field("purpose"), "seed_purchase")
}

func TestTwoPhaseExecution(t *testing.T) {
	ctx := context.Background()
	session, repo := newFarmerSession(t)

	resp := session.Respond(ctx, "pay 500 rupees for seeds")
	gt.Equal(t, resp.Type, model.ChatResponseFunctionCall)

	result := session.Execute(ctx, resp.Function, resp.Params)
	gt.True(t, result.Success)
	gt.S(t, result.Message).Contains("₹500")

	records, err := repo.List(ctx, model.KindTransactions)
	gt.NoError(t, err)
	gt.A(t, records).Length(1)

	// The narrative is folded into the rolling history
	history := session.History()
	gt.Equal(t, history[len(history)-1].Role, model.MessageRoleAssistant)
	gt.Equal(t, history[len(history)-1].Content, result.Message)
}

func TestRespondFallsBackToReply(t *testing.T) {
	session, _ := newFarmerSession(t)

	resp := session.Respond(context.Background(), "hello, how are you")
	gt.Equal(t, resp.Type, model.ChatResponseMessage)
	gt.S(t, resp.Content).Contains("Ramesh")
	gt.S(t, resp.Content).Contains("You can ask me to")
}

func TestRespondTopicalReply(t *testing.T) {
	session, _ := newFarmerSession(t)

	resp := session.Respond(context.Background(), "tell me about soil preparation")
	gt.Equal(t, resp.Type, model.ChatResponseMessage)
	gt.S(t, resp.Content).Contains("soil")
}

func TestUnknownRoleFallsBack(t *testing.T) {
	session, err := chat.New(chat.NewInput{
		User: &model.UserProfile{ID: "g1", Name: "Guest", Role: model.Role("guest")},
		Repo: repository.NewMemory(),
		Env:  function.TestEnv(sessionNow),
	})
	gt.NoError(t, err)

	// Empty function set: even a strong trigger cannot classify
	resp := session.Respond(context.Background(), "pay 500 rupees for seeds")
	gt.Equal(t, resp.Type, model.ChatResponseMessage)
	gt.S(t, resp.Content).Contains("sign in")
}

func TestExecuteOutsideCapabilityProfile(t *testing.T) {
	ctx := context.Background()
	session, repo := newFarmerSession(t)

	// Farmers cannot broadcast; the handler exists but the role gate holds
	result := session.Execute(ctx, model.FnBroadcastAnnouncement,
		&model.FunctionParams{Fields: map[string]any{"body": "hello"}})
	gt.False(t, result.Success)
	gt.S(t, result.Message).Contains("not available")

	records, err := repo.List(ctx, model.KindNotifications)
	gt.NoError(t, err)
	gt.A(t, records).Length(0)
}

func TestSendOneShot(t *testing.T) {
	session, repo := newFarmerSession(t)

	turn := session.Send(context.Background(), "pay 250 rupees for fertilizer")
	gt.Equal(t, turn.Response.Type, model.ChatResponseFunctionCall)
	gt.V(t, turn.Result).NotNil()
	gt.True(t, turn.Result.Success)
	gt.Equal(t, turn.Reply, turn.Result.Message)

	records, err := repo.List(context.Background(), model.KindTransactions)
	gt.NoError(t, err)
	gt.A(t, records).Length(1)
}

func TestSendValidationFailureTurn(t *testing.T) {
	session, repo := newFarmerSession(t)

	// Classified as a payment but carries no amount
	turn := session.Send(context.Background(), "pay for seeds")
	gt.Equal(t, turn.Response.Type, model.ChatResponseFunctionCall)
	gt.False(t, turn.Result.Success)
	gt.S(t, turn.Reply).Contains("valid amount")

	records, err := repo.List(context.Background(), model.KindTransactions)
	gt.NoError(t, err)
	gt.A(t, records).Length(0)
}

func TestHistoryIsBounded(t *testing.T) {
	session, _ := newFarmerSession(t)

	for i := 0; i < 30; i++ {
		session.Send(context.Background(), fmt.Sprintf("hello number %d", i))
	}
	gt.A(t, session.History()).Length(20)
}

func TestSeededHistoryInformsExtraction(t *testing.T) {
	repo := repository.NewMemory()
	session, err := chat.New(chat.NewInput{
		User: &model.UserProfile{ID: "c1", Name: "Priya", Role: model.RoleConsumer},
		Repo: repo,
		Env:  function.TestEnv(sessionNow),
		History: []model.Message{
			{Role: model.MessageRoleUser, Content: "I placed order ORD-88 on monday", Timestamp: sessionNow},
		},
	})
	gt.NoError(t, err)

	resp := session.Respond(context.Background(), "where is my order")
	gt.Equal(t, resp.Type, model.ChatResponseFunctionCall)
	gt.Equal(t, resp.Function, model.FnTrackOrder)
	gt.Equal(t, resp.Params.Field("order_id"), "ord-88")
}
