package function

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/kisanmitra/kisanmitra/pkg/model"
	"github.com/kisanmitra/kisanmitra/pkg/repository"
)

type trackOrderInput struct {
	OrderID string `json:"order_id"`
}

// Delivery stages an order moves through. The reported stage is simulated:
// it is derived deterministically from the order ID so repeated queries
// for the same order agree.
var orderStages = []string{
	"confirmed and being packed at the warehouse",
	"packed and waiting for pickup",
	"out for delivery",
	"delivered",
}

// TrackOrder narrates the delivery status of an order. With no explicit
// order ID it falls back to the requester's most recent order payment.
type TrackOrder struct {
	repo repository.Repository
}

func (h *TrackOrder) Name() model.FunctionName {
	return model.FnTrackOrder
}

func (h *TrackOrder) Execute(ctx context.Context, inv *Invocation) (*model.FunctionResult, error) {
	var input trackOrderInput
	if err := inv.Decode(&input); err != nil {
		return nil, goerr.Wrap(err, "failed to decode track order input")
	}

	if input.OrderID != "" {
		stage := orderStages[stageIndex(input.OrderID)]
		return &model.FunctionResult{
			Success: true,
			Message: fmt.Sprintf("Order %s is %s.", input.OrderID, stage),
			Data: map[string]any{
				"order_id": input.OrderID,
				"status":   stage,
			},
		}, nil
	}

	// No ID in the message or history: use the latest order payment
	records, err := h.repo.ListByActor(ctx, model.KindTransactions, inv.RequesterID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read transactions")
	}

	for i := len(records) - 1; i >= 0; i-- {
		var txn model.Transaction
		if err := records[i].Decode(&txn); err != nil {
			return nil, err
		}
		if txn.Purpose != "order_payment" {
			continue
		}
		stage := orderStages[stageIndex(string(records[i].ID))]
		return &model.FunctionResult{
			Success: true,
			Message: fmt.Sprintf("Your latest order (paid ₹%d, reference %s) is %s.",
				txn.AmountINR, records[i].ID, stage),
			Data: map[string]any{
				"order_id": string(records[i].ID),
				"status":   stage,
			},
		}, nil
	}

	return &model.FunctionResult{
		Success: false,
		Message: "I couldn't find a recent order for you. Please share the order ID, for example \"track order ORD-1042\".",
	}, nil
}

func stageIndex(id string) int {
	sum := 0
	for _, c := range id {
		sum += int(c)
	}
	return sum % len(orderStages)
}
