package intent

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kisanmitra/kisanmitra/pkg/model"
)

// Extractor pulls structured parameters out of an unstructured message for
// a matched function. Extraction is best-effort and never fails: missing
// values are left unset for the executor's validation to catch, or filled
// from contextual defaults (user profile, current season).
type Extractor struct {
	now func() time.Time
}

// NewExtractor creates an extractor using the wall clock
func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// NewExtractorWithClock creates an extractor with an injected clock so
// season-dependent defaults are deterministic in tests
func NewExtractorWithClock(now func() time.Time) *Extractor {
	return &Extractor{now: now}
}

// Ordered amount patterns: currency-prefixed, currency-suffixed, verb
// forms, then any bare integer. First match wins.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:₹|rs\.?\s*|inr\s*)(\d+)`),
	regexp.MustCompile(`(\d+)\s*(?:rupees|rupee|rs\b|inr)`),
	regexp.MustCompile(`(?:pay|send|transfer)\s+(?:₹\s*)?(\d+)`),
	regexp.MustCompile(`\b(\d+)\b`),
}

var quantityPattern = regexp.MustCompile(`(\d+)\s*(kgs?|kilograms?|quintals?|tonnes?|tons?|bags?|crates?)`)

var landPattern = regexp.MustCompile(`(\d+)\s*(?:acres?|hectares?|bigha)`)

var orderIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(ord[-_]?\d+)\b`),
	regexp.MustCompile(`#(\d+)`),
}

// Free-text body patterns: quoted text, then "saying/that/: rest of line"
var bodyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"([^"]+)"`),
	regexp.MustCompile(`'([^']+)'`),
	regexp.MustCompile(`(?:saying|that says|that|message:)\s+(.+)$`),
}

// keywordTable maps message keywords to a canonical value; entries are
// checked in order and the first hit wins
type keywordTable []struct {
	keyword   string
	canonical string
}

var purposeTable = keywordTable{
	{"seed", "seed_purchase"},
	{"fertilis", "fertilizer_purchase"},
	{"fertiliz", "fertilizer_purchase"},
	{"pesticide", "fertilizer_purchase"},
	{"equipment", "equipment_purchase"},
	{"tractor", "equipment_purchase"},
	{"tool", "equipment_purchase"},
	{"transport", "transport_cost"},
	{"truck", "transport_cost"},
	{"order", "order_payment"},
	{"vegetable", "order_payment"},
	{"produce", "order_payment"},
}

var issueTable = keywordTable{
	{"damage", "damaged_item"},
	{"rotten", "damaged_item"},
	{"broken", "damaged_item"},
	{"late", "late_delivery"},
	{"delay", "late_delivery"},
	{"wrong", "wrong_item"},
	{"missing", "wrong_item"},
	{"refund", "refund_request"},
	{"payment", "payment_issue"},
}

var audienceTable = keywordTable{
	{"farmer", "farmers"},
	{"consumer", "consumers"},
	{"customer", "consumers"},
	{"warehouse", "warehouse"},
	{"everyone", "all"},
	{"all users", "all"},
}

var cropKeywords = []string{
	"wheat", "rice", "paddy", "maize", "cotton", "sugarcane",
	"tomato", "onion", "potato", "mustard", "soybean", "groundnut",
}

// Extract builds the parameter bag for the matched function. The user
// profile supplies contextual defaults; history is consulted for values
// the current message omits (e.g. an order ID mentioned earlier).
func (e *Extractor) Extract(message string, fn model.FunctionName, user *model.UserProfile, history []model.Message) *model.FunctionParams {
	msg := strings.ToLower(strings.TrimSpace(message))
	fields := map[string]any{}

	switch fn {
	case model.FnCreatePayment:
		if amount, ok := firstInt(amountPatterns, msg); ok {
			fields["amount_inr"] = amount
		}
		fields["purpose"] = purposeTable.lookup(msg, "general_payment")

	case model.FnGetWeatherForecast:
		fields["location"] = e.locationOf(user)
		fields["season"] = string(SeasonOf(e.now()))

	case model.FnRecordHarvest:
		fields["crop"] = firstKeyword(msg, cropKeywords, "produce")
		qty, unit := quantityOf(msg)
		fields["quantity"] = qty
		fields["unit"] = unit
		fields["location"] = e.locationOf(user)

	case model.FnRecordStockEntry:
		fields["item"] = firstKeyword(msg, cropKeywords, "produce")
		qty, unit := quantityOf(msg)
		fields["quantity"] = qty
		fields["unit"] = unit
		fields["location"] = e.locationOf(user)

	case model.FnCheckInventory:
		if crop := firstKeyword(msg, cropKeywords, ""); crop != "" {
			fields["item"] = crop
		}

	case model.FnGenerateQRCode:
		fields["payload"] = qrPayload(msg)
		fields["purpose"] = qrPurpose(msg)

	case model.FnSendNotification:
		fields["body"] = freeText(msg, notificationTriggerWords)
		fields["audience"] = audienceTable.lookup(msg, "farmers")

	case model.FnBroadcastAnnouncement:
		fields["body"] = freeText(msg, announcementTriggerWords)
		fields["audience"] = "all"

	case model.FnRaiseComplaint:
		fields["issue_type"] = issueTable.lookup(msg, "general_issue")
		fields["body"] = freeText(msg, complaintTriggerWords)

	case model.FnTrackOrder:
		if id, ok := firstString(orderIDPatterns, msg); ok {
			fields["order_id"] = id
		} else if id, ok := orderIDFromHistory(history); ok {
			fields["order_id"] = id
		}

	case model.FnCheckScheme:
		fields["location"] = e.locationOf(user)
		if land, ok := firstInt([]*regexp.Regexp{landPattern}, msg); ok {
			fields["land_acres"] = land
		}
	}

	params := &model.FunctionParams{Fields: fields}
	if user != nil {
		params.RequesterID = user.ID
		params.Context = model.RequestContext{
			Name:     user.Name,
			Role:     user.Role,
			Location: user.Location,
		}
	}
	return params
}

// locationOf falls back from the profile to a hardcoded literal
func (e *Extractor) locationOf(user *model.UserProfile) string {
	if user != nil && user.Location != "" {
		return user.Location
	}
	return "your region"
}

func firstInt(patterns []*regexp.Regexp, msg string) (int, bool) {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(msg); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return n, true
		}
	}
	return 0, false
}

func firstString(patterns []*regexp.Regexp, msg string) (string, bool) {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(msg); m != nil {
			return m[1], true
		}
	}
	return "", false
}

func (t keywordTable) lookup(msg, fallback string) string {
	for _, e := range t {
		if strings.Contains(msg, e.keyword) {
			return e.canonical
		}
	}
	return fallback
}

func firstKeyword(msg string, keywords []string, fallback string) string {
	for _, k := range keywords {
		if strings.Contains(msg, k) {
			return k
		}
	}
	return fallback
}

func quantityOf(msg string) (int, string) {
	m := quantityPattern.FindStringSubmatch(msg)
	if m == nil {
		return 0, "kg"
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "kg"
	}
	return n, normalizeUnit(m[2])
}

func normalizeUnit(unit string) string {
	switch {
	case strings.HasPrefix(unit, "quintal"):
		return "quintal"
	case strings.HasPrefix(unit, "ton"):
		return "tonne"
	case strings.HasPrefix(unit, "bag"):
		return "bag"
	case strings.HasPrefix(unit, "crate"):
		return "crate"
	default:
		return "kg"
	}
}

var (
	notificationTriggerWords = []string{"send a notification", "send notification", "notification", "notify", "remind", "alert", "please", "farmers", "consumers", "customers", "everyone"}
	announcementTriggerWords = []string{"broadcast", "announce", "announcement", "tell everyone", "please"}
	complaintTriggerWords    = []string{"i want to complain", "raise a complaint", "complaint", "complain", "please"}
)

var qrForPattern = regexp.MustCompile(`(?:qr code for|qr for|code for)\s+(.+)$`)

func qrPayload(msg string) string {
	if m := qrForPattern.FindStringSubmatch(msg); m != nil {
		return strings.TrimSpace(m[1])
	}
	return freeText(msg, []string{"generate", "create", "qr code", "qr", "please"})
}

func qrPurpose(msg string) string {
	switch {
	case strings.Contains(msg, "batch") || strings.Contains(msg, "harvest"):
		return "batch"
	case strings.Contains(msg, "order"):
		return "order"
	default:
		return "general"
	}
}

// freeText extracts a message body: quoted or trigger-suffixed text first,
// otherwise the whole message with trigger words stripped. It is a
// heuristic of last resort and never returns an error.
func freeText(msg string, triggerWords []string) string {
	for _, p := range bodyPatterns {
		if m := p.FindStringSubmatch(msg); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	body := msg
	for _, w := range triggerWords {
		body = strings.ReplaceAll(body, w, "")
	}
	body = strings.TrimSpace(strings.Trim(strings.TrimSpace(body), ":,."))
	if body == "" {
		return msg
	}
	return body
}

// orderIDFromHistory scans recent messages newest-first for an order ID
// mentioned earlier in the conversation
func orderIDFromHistory(history []model.Message) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if id, ok := firstString(orderIDPatterns, strings.ToLower(history[i].Content)); ok {
			return id, true
		}
	}
	return "", false
}
