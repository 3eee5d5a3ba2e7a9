package function

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/kisanmitra/kisanmitra/pkg/model"
	"github.com/kisanmitra/kisanmitra/pkg/repository"
)

type qrInput struct {
	Payload string `json:"payload"`
	Purpose string `json:"purpose"`
}

// GenerateQRCode registers a traceability QR code for a batch or order
type GenerateQRCode struct {
	repo repository.Repository
	env  *Env
}

func (h *GenerateQRCode) Name() model.FunctionName {
	return model.FnGenerateQRCode
}

func (h *GenerateQRCode) Execute(ctx context.Context, inv *Invocation) (*model.FunctionResult, error) {
	var input qrInput
	if err := inv.Decode(&input); err != nil {
		return nil, goerr.Wrap(err, "failed to decode qr input")
	}

	if input.Payload == "" {
		return &model.FunctionResult{
			Success: false,
			Message: "Please tell me what the QR code is for, for example \"generate a qr code for the tomato batch\".",
		}, nil
	}
	if input.Purpose == "" {
		input.Purpose = "general"
	}

	id := h.env.NewID("QR")
	record, err := model.NewRecord(id, model.KindQRCodes, inv.RequesterID, h.env.Now(), &model.QRCode{
		Payload: input.Payload,
		Purpose: input.Purpose,
	})
	if err != nil {
		return nil, err
	}
	if err := h.repo.Append(ctx, record); err != nil {
		return nil, goerr.Wrap(err, "failed to persist qr code")
	}

	return &model.FunctionResult{
		Success: true,
		Message: fmt.Sprintf("QR code %s generated for \"%s\". Scan it from the codes screen to print the label.", id, input.Payload),
		Data: map[string]any{
			"qr_id":   string(id),
			"payload": input.Payload,
			"purpose": input.Purpose,
		},
	}, nil
}
