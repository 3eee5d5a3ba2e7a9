package function

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"

	"github.com/kisanmitra/kisanmitra/pkg/intent"
	"github.com/kisanmitra/kisanmitra/pkg/model"
)

type weatherInput struct {
	Location string `json:"location"`
	Season   string `json:"season"`
}

// GetWeatherForecast narrates a season-derived outlook. It writes no
// record; the forecast is informational only.
type GetWeatherForecast struct {
	env *Env
}

func (h *GetWeatherForecast) Name() model.FunctionName {
	return model.FnGetWeatherForecast
}

var seasonOutlooks = map[intent.Season]string{
	intent.SeasonKharif: "monsoon showers are likely this week with high humidity; plan spraying for the dry mornings",
	intent.SeasonRabi:   "cool and dry days are expected with clear skies; good conditions for sowing and irrigation",
	intent.SeasonZaid:   "hot and dry weather is expected; irrigate in the evening and watch for heat stress",
}

func (h *GetWeatherForecast) Execute(ctx context.Context, inv *Invocation) (*model.FunctionResult, error) {
	var input weatherInput
	if err := inv.Decode(&input); err != nil {
		return nil, goerr.Wrap(err, "failed to decode weather input")
	}

	if input.Location == "" {
		input.Location = inv.Context.Location
	}
	if input.Location == "" {
		input.Location = "your region"
	}

	season := intent.Season(input.Season)
	outlook, ok := seasonOutlooks[season]
	if !ok {
		season = intent.SeasonOf(h.env.Now())
		outlook = seasonOutlooks[season]
	}

	return &model.FunctionResult{
		Success: true,
		Message: fmt.Sprintf("Weather outlook for %s (%s season): %s.", input.Location, season, outlook),
		Data: map[string]any{
			"location": input.Location,
			"season":   string(season),
			"forecast": outlook,
		},
	}, nil
}
