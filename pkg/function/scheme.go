package function

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/kisanmitra/kisanmitra/pkg/model"
)

type schemeInput struct {
	Location  string `json:"location"`
	LandAcres int    `json:"land_acres"`
}

// CheckScheme narrates government scheme eligibility from the profile and
// any land size mentioned in the message. Informational only; no record.
type CheckScheme struct{}

func (h *CheckScheme) Name() model.FunctionName {
	return model.FnCheckScheme
}

func (h *CheckScheme) Execute(ctx context.Context, inv *Invocation) (*model.FunctionResult, error) {
	var input schemeInput
	if err := inv.Decode(&input); err != nil {
		return nil, goerr.Wrap(err, "failed to decode scheme input")
	}

	if input.Location == "" {
		input.Location = inv.Context.Location
	}
	if input.Location == "" {
		input.Location = "your region"
	}

	schemes := []string{
		"PM-KISAN income support (₹6000/year in three installments)",
		"Pradhan Mantri Fasal Bima Yojana crop insurance",
		"Kisan Credit Card subsidised credit",
	}
	if input.LandAcres > 0 && input.LandAcres <= 2 {
		schemes = append(schemes, "small and marginal farmer benefits (holdings up to 2 acres)")
	}

	msg := fmt.Sprintf("Based on your profile in %s, you may be eligible for: %s. Visit your local agriculture office with land records and Aadhaar to apply.",
		input.Location, strings.Join(schemes, "; "))

	return &model.FunctionResult{
		Success: true,
		Message: msg,
		Data: map[string]any{
			"location": input.Location,
			"schemes":  schemes,
		},
	}, nil
}
