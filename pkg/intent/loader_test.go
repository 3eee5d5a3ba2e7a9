package intent_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/kisanmitra/kisanmitra/pkg/intent"
	"github.com/kisanmitra/kisanmitra/pkg/model"
)

func writeTriggerFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "triggers.yml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTriggers(t *testing.T) {
	path := writeTriggerFile(t, `
functions:
  - name: create_payment
    phrases:
      - text: "pay"
        weight: 0.9
      - text: "send money"
        weight: 0.85
  - name: get_weather_forecast
    phrases:
      - text: "weather"
        weight: 0.9
`)

	table, err := intent.LoadTriggers(path)
	gt.NoError(t, err)
	gt.A(t, table).Length(2)
	gt.Equal(t, table[0].Function, model.FnCreatePayment)
	gt.A(t, table[0].Phrases).Length(2)
	gt.Equal(t, table[0].Phrases[0].Weight, 0.9)

	// The loaded table drives classification like the built-in one
	c := intent.NewClassifierWithTable(table)
	match := c.Classify("send money now", []model.FunctionName{model.FnCreatePayment})
	gt.V(t, match).NotNil()
	gt.Equal(t, match.Confidence, 0.85)
}

func TestLoadTriggersRejectsBadWeight(t *testing.T) {
	path := writeTriggerFile(t, `
functions:
  - name: create_payment
    phrases:
      - text: "pay"
        weight: 1.5
`)

	_, err := intent.LoadTriggers(path)
	gt.Error(t, err)
}

func TestLoadTriggersRejectsDuplicates(t *testing.T) {
	path := writeTriggerFile(t, `
functions:
  - name: create_payment
    phrases:
      - text: "pay"
        weight: 0.9
  - name: create_payment
    phrases:
      - text: "payment"
        weight: 0.9
`)

	_, err := intent.LoadTriggers(path)
	gt.Error(t, err)
}

func TestLoadTriggersRejectsEmpty(t *testing.T) {
	path := writeTriggerFile(t, "functions: []\n")

	_, err := intent.LoadTriggers(path)
	gt.Error(t, err)
}

func TestLoadTriggersMissingFile(t *testing.T) {
	_, err := intent.LoadTriggers(filepath.Join(t.TempDir(), "nope.yml"))
	gt.Error(t, err)
}
