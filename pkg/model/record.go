package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrUnknownRole       = goerr.New("unknown role")
	ErrUnknownRecordKind = goerr.New("unknown record kind")
)

// RecordKind names one of the append-only logs in the durable store
type RecordKind string

const (
	KindTransactions  RecordKind = "transactions"
	KindNotifications RecordKind = "notifications"
	KindLedger        RecordKind = "ledger"
	KindQRCodes       RecordKind = "qrcodes"
)

// Validate checks if the kind addresses a known log
func (k RecordKind) Validate() error {
	switch k {
	case KindTransactions, KindNotifications, KindLedger, KindQRCodes:
		return nil
	default:
		return goerr.Wrap(ErrUnknownRecordKind, "unknown record kind", goerr.V("kind", k))
	}
}

type RecordID string

// NewRecordID generates a synthetic record identifier. Uniqueness is
// best-effort: a timestamp prefix for readability plus a UUID-derived
// suffix, which is sufficient for the append-only log contract.
func NewRecordID(prefix string, now time.Time) RecordID {
	suffix := uuid.New().String()[:8]
	return RecordID(prefix + "-" + now.Format("20060102150405") + "-" + suffix)
}

// Record is one append-only entry in the durable store. Records are
// created by function handlers and never updated or deleted by this
// subsystem; editing, if any, belongs to the excluded CRUD layer.
type Record struct {
	ID        RecordID        `json:"id"`
	Kind      RecordKind      `json:"kind"`
	ActorID   string          `json:"actor_id"`
	CreatedAt time.Time       `json:"created_at"`
	Data      json.RawMessage `json:"data"`
}

// NewRecord builds a record envelope around a typed payload
func NewRecord(id RecordID, kind RecordKind, actorID string, now time.Time, payload any) (*Record, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal record payload", goerr.V("kind", kind))
	}
	return &Record{
		ID:        id,
		Kind:      kind,
		ActorID:   actorID,
		CreatedAt: now,
		Data:      raw,
	}, nil
}

// Decode unmarshals the record payload into a typed destination
func (r *Record) Decode(dst any) error {
	if err := json.Unmarshal(r.Data, dst); err != nil {
		return goerr.Wrap(err, "failed to decode record payload", goerr.V("id", r.ID), goerr.V("kind", r.Kind))
	}
	return nil
}

// Transaction is the payload of a "transactions" record
type Transaction struct {
	AmountINR int    `json:"amount_inr"`
	Purpose   string `json:"purpose"`
	Status    string `json:"status"`
}

// Notification is the payload of a "notifications" record
type Notification struct {
	Body      string `json:"body"`
	Category  string `json:"category"`
	Audience  string `json:"audience"`
	IssueType string `json:"issue_type,omitempty"`
}

// LedgerEntry is the payload of a "ledger" record
type LedgerEntry struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	Entry    string `json:"entry"`
	Location string `json:"location"`
}

// QRCode is the payload of a "qrcodes" record
type QRCode struct {
	Payload string `json:"payload"`
	Purpose string `json:"purpose"`
}
