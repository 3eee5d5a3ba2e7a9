package function

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/kisanmitra/kisanmitra/pkg/model"
	"github.com/kisanmitra/kisanmitra/pkg/repository"
)

type ledgerInput struct {
	Crop     string `json:"crop"`
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	Location string `json:"location"`
}

func (in *ledgerInput) itemName() string {
	if in.Item != "" {
		return in.Item
	}
	return in.Crop
}

// RecordHarvest appends a harvest entry to the ledger
type RecordHarvest struct {
	repo repository.Repository
	env  *Env
}

func (h *RecordHarvest) Name() model.FunctionName {
	return model.FnRecordHarvest
}

func (h *RecordHarvest) Execute(ctx context.Context, inv *Invocation) (*model.FunctionResult, error) {
	return appendLedger(ctx, h.repo, h.env, inv, "harvest",
		"Please include how much you harvested, for example \"record my harvest of 200 kg tomato\".")
}

// RecordStockEntry appends an incoming-stock entry to the ledger
type RecordStockEntry struct {
	repo repository.Repository
	env  *Env
}

func (h *RecordStockEntry) Name() model.FunctionName {
	return model.FnRecordStockEntry
}

func (h *RecordStockEntry) Execute(ctx context.Context, inv *Invocation) (*model.FunctionResult, error) {
	return appendLedger(ctx, h.repo, h.env, inv, "stock_in",
		"Please include the received quantity, for example \"received stock of 50 quintal wheat\".")
}

func appendLedger(ctx context.Context, repo repository.Repository, env *Env, inv *Invocation, entry, missingQuantityMsg string) (*model.FunctionResult, error) {
	var input ledgerInput
	if err := inv.Decode(&input); err != nil {
		return nil, goerr.Wrap(err, "failed to decode ledger input")
	}

	if input.Quantity <= 0 {
		return &model.FunctionResult{Success: false, Message: missingQuantityMsg}, nil
	}

	item := input.itemName()
	if item == "" {
		item = "produce"
	}
	if input.Unit == "" {
		input.Unit = "kg"
	}
	if input.Location == "" {
		input.Location = inv.Context.Location
	}

	id := env.NewID("LGR")
	record, err := model.NewRecord(id, model.KindLedger, inv.RequesterID, env.Now(), &model.LedgerEntry{
		Item:     item,
		Quantity: input.Quantity,
		Unit:     input.Unit,
		Entry:    entry,
		Location: input.Location,
	})
	if err != nil {
		return nil, err
	}
	if err := repo.Append(ctx, record); err != nil {
		return nil, goerr.Wrap(err, "failed to persist ledger entry")
	}

	verb := "Harvest"
	if entry == "stock_in" {
		verb = "Stock entry"
	}
	return &model.FunctionResult{
		Success: true,
		Message: fmt.Sprintf("%s of %d %s %s recorded in the ledger (ID %s).",
			verb, input.Quantity, input.Unit, item, id),
		Data: map[string]any{
			"ledger_id": string(id),
			"item":      item,
			"quantity":  input.Quantity,
			"unit":      input.Unit,
		},
	}, nil
}

type inventoryInput struct {
	Item string `json:"item"`
}

// CheckInventory summarizes stock levels from the ledger. Harvest and
// stock_in entries both count toward availability.
type CheckInventory struct {
	repo repository.Repository
}

func (h *CheckInventory) Name() model.FunctionName {
	return model.FnCheckInventory
}

func (h *CheckInventory) Execute(ctx context.Context, inv *Invocation) (*model.FunctionResult, error) {
	var input inventoryInput
	if err := inv.Decode(&input); err != nil {
		return nil, goerr.Wrap(err, "failed to decode inventory input")
	}

	records, err := h.repo.List(ctx, model.KindLedger)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read ledger")
	}

	totals := map[string]int{}
	units := map[string]string{}
	for _, rec := range records {
		var entry model.LedgerEntry
		if err := rec.Decode(&entry); err != nil {
			return nil, err
		}
		if input.Item != "" && entry.Item != input.Item {
			continue
		}
		totals[entry.Item] += entry.Quantity
		units[entry.Item] = entry.Unit
	}

	if len(totals) == 0 {
		msg := "The ledger has no stock entries yet."
		if input.Item != "" {
			msg = fmt.Sprintf("No stock of %s is recorded in the ledger.", input.Item)
		}
		return &model.FunctionResult{
			Success: true,
			Message: msg,
			Data:    map[string]any{"items": map[string]int{}},
		}, nil
	}

	items := make([]string, 0, len(totals))
	for item := range totals {
		items = append(items, item)
	}
	sort.Strings(items)

	lines := make([]string, 0, len(items))
	data := map[string]int{}
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s: %d %s", item, totals[item], units[item]))
		data[item] = totals[item]
	}

	return &model.FunctionResult{
		Success: true,
		Message: "Current stock — " + strings.Join(lines, ", ") + ".",
		Data:    map[string]any{"items": data},
	}, nil
}
