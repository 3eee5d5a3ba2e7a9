package function

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/kisanmitra/kisanmitra/pkg/model"
	"github.com/kisanmitra/kisanmitra/pkg/repository"
)

type notificationInput struct {
	Body     string `json:"body"`
	Audience string `json:"audience"`
}

// SendNotification appends a targeted notification to the notifications log
type SendNotification struct {
	repo repository.Repository
	env  *Env
}

func (h *SendNotification) Name() model.FunctionName {
	return model.FnSendNotification
}

func (h *SendNotification) Execute(ctx context.Context, inv *Invocation) (*model.FunctionResult, error) {
	var input notificationInput
	if err := inv.Decode(&input); err != nil {
		return nil, goerr.Wrap(err, "failed to decode notification input")
	}

	if input.Body == "" {
		return &model.FunctionResult{
			Success: false,
			Message: "Please tell me what the notification should say, for example \"notify farmers that the delivery truck arrives at 3pm\".",
		}, nil
	}
	if input.Audience == "" {
		input.Audience = "farmers"
	}

	id := h.env.NewID("NTF")
	record, err := model.NewRecord(id, model.KindNotifications, inv.RequesterID, h.env.Now(), &model.Notification{
		Body:     input.Body,
		Category: "notification",
		Audience: input.Audience,
	})
	if err != nil {
		return nil, err
	}
	if err := h.repo.Append(ctx, record); err != nil {
		return nil, goerr.Wrap(err, "failed to persist notification")
	}

	return &model.FunctionResult{
		Success: true,
		Message: fmt.Sprintf("Notification sent to %s: \"%s\" (ID %s).", input.Audience, input.Body, id),
		Data: map[string]any{
			"notification_id": string(id),
			"audience":        input.Audience,
		},
	}, nil
}

// BroadcastAnnouncement appends a platform-wide announcement
type BroadcastAnnouncement struct {
	repo repository.Repository
	env  *Env
}

func (h *BroadcastAnnouncement) Name() model.FunctionName {
	return model.FnBroadcastAnnouncement
}

func (h *BroadcastAnnouncement) Execute(ctx context.Context, inv *Invocation) (*model.FunctionResult, error) {
	var input notificationInput
	if err := inv.Decode(&input); err != nil {
		return nil, goerr.Wrap(err, "failed to decode announcement input")
	}

	if input.Body == "" {
		return &model.FunctionResult{
			Success: false,
			Message: "Please tell me what to announce, for example \"broadcast that onion prices are updated\".",
		}, nil
	}

	id := h.env.NewID("ANN")
	record, err := model.NewRecord(id, model.KindNotifications, inv.RequesterID, h.env.Now(), &model.Notification{
		Body:     input.Body,
		Category: "announcement",
		Audience: "all",
	})
	if err != nil {
		return nil, err
	}
	if err := h.repo.Append(ctx, record); err != nil {
		return nil, goerr.Wrap(err, "failed to persist announcement")
	}

	return &model.FunctionResult{
		Success: true,
		Message: fmt.Sprintf("Announcement published to all users: \"%s\" (ID %s).", input.Body, id),
		Data: map[string]any{
			"notification_id": string(id),
		},
	}, nil
}

type complaintInput struct {
	Body      string `json:"body"`
	IssueType string `json:"issue_type"`
}

// RaiseComplaint files a consumer complaint into the notifications log so
// the support team's views pick it up
type RaiseComplaint struct {
	repo repository.Repository
	env  *Env
}

func (h *RaiseComplaint) Name() model.FunctionName {
	return model.FnRaiseComplaint
}

func (h *RaiseComplaint) Execute(ctx context.Context, inv *Invocation) (*model.FunctionResult, error) {
	var input complaintInput
	if err := inv.Decode(&input); err != nil {
		return nil, goerr.Wrap(err, "failed to decode complaint input")
	}

	if input.Body == "" {
		return &model.FunctionResult{
			Success: false,
			Message: "Please describe the problem with your order so I can file the complaint.",
		}, nil
	}
	if input.IssueType == "" {
		input.IssueType = "general_issue"
	}

	id := h.env.NewID("CMP")
	record, err := model.NewRecord(id, model.KindNotifications, inv.RequesterID, h.env.Now(), &model.Notification{
		Body:      input.Body,
		Category:  "complaint",
		Audience:  "support",
		IssueType: input.IssueType,
	})
	if err != nil {
		return nil, err
	}
	if err := h.repo.Append(ctx, record); err != nil {
		return nil, goerr.Wrap(err, "failed to persist complaint")
	}

	return &model.FunctionResult{
		Success: true,
		Message: fmt.Sprintf("Your complaint has been filed (ID %s). The support team will reach out within 24 hours.", id),
		Data: map[string]any{
			"complaint_id": string(id),
			"issue_type":   input.IssueType,
		},
	}, nil
}
