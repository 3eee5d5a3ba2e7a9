package function

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/kisanmitra/kisanmitra/pkg/model"
	"github.com/kisanmitra/kisanmitra/pkg/repository"
)

type createPaymentInput struct {
	AmountINR int    `json:"amount_inr"`
	Purpose   string `json:"purpose"`
}

// CreatePayment records a payment transaction in the transactions log
type CreatePayment struct {
	repo repository.Repository
	env  *Env
}

func (h *CreatePayment) Name() model.FunctionName {
	return model.FnCreatePayment
}

func (h *CreatePayment) Execute(ctx context.Context, inv *Invocation) (*model.FunctionResult, error) {
	var input createPaymentInput
	if err := inv.Decode(&input); err != nil {
		return nil, goerr.Wrap(err, "failed to decode payment input")
	}

	if input.AmountINR <= 0 {
		return &model.FunctionResult{
			Success: false,
			Message: "Please provide a valid amount for the payment, for example \"pay 500 rupees for seeds\".",
		}, nil
	}

	if input.Purpose == "" {
		input.Purpose = "general_payment"
	}

	now := h.env.Now()
	id := h.env.NewID("TXN")
	record, err := model.NewRecord(id, model.KindTransactions, inv.RequesterID, now, &model.Transaction{
		AmountINR: input.AmountINR,
		Purpose:   input.Purpose,
		Status:    "completed",
	})
	if err != nil {
		return nil, err
	}
	if err := h.repo.Append(ctx, record); err != nil {
		return nil, goerr.Wrap(err, "failed to persist transaction")
	}

	return &model.FunctionResult{
		Success: true,
		Message: fmt.Sprintf("Payment of ₹%d for %s is done. Your transaction ID is %s.",
			input.AmountINR, describePurpose(input.Purpose), id),
		Data: map[string]any{
			"transaction_id": string(id),
			"amount_inr":     input.AmountINR,
			"purpose":        input.Purpose,
		},
	}, nil
}

// describePurpose turns a canonical purpose value back into readable text
func describePurpose(purpose string) string {
	return strings.ReplaceAll(purpose, "_", " ")
}
