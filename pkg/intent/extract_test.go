package intent_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/kisanmitra/kisanmitra/pkg/intent"
	"github.com/kisanmitra/kisanmitra/pkg/model"
)

var testFarmer = &model.UserProfile{
	ID:       "farmer-1",
	Name:     "Ramesh",
	Role:     model.RoleFarmer,
	Location: "Nashik",
}

func fixedClock(month time.Month) func() time.Time {
	return func() time.Time {
		return time.Date(2025, month, 15, 10, 0, 0, 0, time.UTC)
	}
}

func TestExtractPaymentAmount(t *testing.T) {
	e := intent.NewExtractor()

	cases := []struct {
		name    string
		message string
		amount  int
	}{
		{"suffix rupees", "pay 500 rupees for seeds", 500},
		{"prefix symbol", "pay ₹250 for fertilizer", 250},
		{"rs prefix", "transfer rs 1200 to the seller", 1200},
		{"verb form", "pay 75 to the transport company", 75},
		{"bare number", "payment of 900 please", 900},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := e.Extract(tc.message, model.FnCreatePayment, testFarmer, nil)
			gt.Equal(t, params.Field("amount_inr").(int), tc.amount)
		})
	}
}

func TestExtractPaymentAmountMissing(t *testing.T) {
	e := intent.NewExtractor()

	// No amount anywhere: the key stays unset so the handler rejects
	params := e.Extract("pay for seeds", model.FnCreatePayment, testFarmer, nil)
	gt.V(t, params.Field("amount_inr")).Nil()
}

func TestExtractPaymentPurpose(t *testing.T) {
	e := intent.NewExtractor()

	cases := []struct {
		message string
		purpose string
	}{
		{"pay 500 rupees for seeds", "seed_purchase"},
		{"pay 300 for fertilizer", "fertilizer_purchase"},
		{"pay 2000 for the tractor rental", "equipment_purchase"},
		{"pay 150 for transport", "transport_cost"},
		{"pay 600 for my order", "order_payment"},
		{"pay 100", "general_payment"},
	}

	for _, tc := range cases {
		params := e.Extract(tc.message, model.FnCreatePayment, testFarmer, nil)
		gt.Equal(t, params.Field("purpose").(string), tc.purpose)
	}
}

func TestExtractProvenance(t *testing.T) {
	e := intent.NewExtractor()

	params := e.Extract("pay 500 rupees", model.FnCreatePayment, testFarmer, nil)
	gt.Equal(t, params.RequesterID, "farmer-1")
	gt.Equal(t, params.Context.Name, "Ramesh")
	gt.Equal(t, params.Context.Role, model.RoleFarmer)
	gt.Equal(t, params.Context.Location, "Nashik")
}

func TestExtractWeatherDefaults(t *testing.T) {
	e := intent.NewExtractorWithClock(fixedClock(time.July))

	params := e.Extract("what's the weather like", model.FnGetWeatherForecast, testFarmer, nil)
	gt.Equal(t, params.Field("location"), "Nashik")
	gt.Equal(t, params.Field("season"), "kharif")
}

func TestExtractWeatherLocationFallback(t *testing.T) {
	e := intent.NewExtractorWithClock(fixedClock(time.December))

	noLocation := &model.UserProfile{ID: "u1", Name: "Asha", Role: model.RoleFarmer}
	params := e.Extract("weather please", model.FnGetWeatherForecast, noLocation, nil)
	gt.Equal(t, params.Field("location"), "your region")
	gt.Equal(t, params.Field("season"), "rabi")
}

func TestExtractHarvest(t *testing.T) {
	e := intent.NewExtractor()

	params := e.Extract("record my harvest of 200 kg tomato", model.FnRecordHarvest, testFarmer, nil)
	gt.Equal(t, params.Field("crop"), "tomato")
	gt.Equal(t, params.Field("quantity"), 200)
	gt.Equal(t, params.Field("unit"), "kg")
	gt.Equal(t, params.Field("location"), "Nashik")
}

func TestExtractStockEntryUnits(t *testing.T) {
	e := intent.NewExtractor()

	params := e.Extract("received stock of 50 quintals wheat", model.FnRecordStockEntry, testFarmer, nil)
	gt.Equal(t, params.Field("item"), "wheat")
	gt.Equal(t, params.Field("quantity"), 50)
	gt.Equal(t, params.Field("unit"), "quintal")
}

func TestExtractNotificationBody(t *testing.T) {
	e := intent.NewExtractor()

	cases := []struct {
		name    string
		message string
		body    string
	}{
		{"quoted", `notify farmers "truck arrives at 3pm"`, "truck arrives at 3pm"},
		{"that clause", "notify farmers that the truck arrives at 3pm", "the truck arrives at 3pm"},
		{"stripped fallback", "notify farmers truck is here", "truck is here"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := e.Extract(tc.message, model.FnSendNotification, testFarmer, nil)
			gt.Equal(t, params.Field("body").(string), tc.body)
			gt.Equal(t, params.Field("audience"), "farmers")
		})
	}
}

func TestExtractComplaint(t *testing.T) {
	e := intent.NewExtractor()

	params := e.Extract("i want to complain, my tomatoes arrived damaged", model.FnRaiseComplaint, testFarmer, nil)
	gt.Equal(t, params.Field("issue_type"), "damaged_item")
	gt.S(t, params.Field("body").(string)).Contains("damaged")
}

func TestExtractQRPayload(t *testing.T) {
	e := intent.NewExtractor()

	params := e.Extract("generate a qr code for the tomato harvest batch", model.FnGenerateQRCode, testFarmer, nil)
	gt.Equal(t, params.Field("payload"), "the tomato harvest batch")
	gt.Equal(t, params.Field("purpose"), "batch")
}

func TestExtractOrderID(t *testing.T) {
	e := intent.NewExtractor()

	params := e.Extract("track order ord-1042", model.FnTrackOrder, testFarmer, nil)
	gt.Equal(t, params.Field("order_id"), "ord-1042")
}

func TestExtractOrderIDFromHistory(t *testing.T) {
	e := intent.NewExtractor()

	history := []model.Message{
		{Role: model.MessageRoleUser, Content: "I placed order ORD-77 yesterday"},
		{Role: model.MessageRoleAssistant, Content: "Noted!"},
	}
	params := e.Extract("where is my order", model.FnTrackOrder, testFarmer, history)
	gt.Equal(t, params.Field("order_id"), "ord-77")
}

func TestExtractOrderIDAbsent(t *testing.T) {
	e := intent.NewExtractor()

	params := e.Extract("where is my order", model.FnTrackOrder, testFarmer, nil)
	gt.V(t, params.Field("order_id")).Nil()
}

func TestSeasonOf(t *testing.T) {
	gt.Equal(t, intent.SeasonOf(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)), intent.SeasonKharif)
	gt.Equal(t, intent.SeasonOf(time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)), intent.SeasonRabi)
	gt.Equal(t, intent.SeasonOf(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)), intent.SeasonRabi)
	gt.Equal(t, intent.SeasonOf(time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)), intent.SeasonZaid)
}
