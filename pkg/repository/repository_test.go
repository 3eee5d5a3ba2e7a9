package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/kisanmitra/kisanmitra/pkg/model"
	"github.com/kisanmitra/kisanmitra/pkg/repository"
)

func openStores(t *testing.T) map[string]repository.Repository {
	t.Helper()

	sqlite, err := repository.NewSQLite(t.TempDir())
	gt.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]repository.Repository{
		"memory": repository.NewMemory(),
		"sqlite": sqlite,
	}
}

func newTransaction(t *testing.T, id, actor string, amount int) *model.Record {
	t.Helper()
	rec, err := model.NewRecord(model.RecordID(id), model.KindTransactions, actor,
		time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
		&model.Transaction{AmountINR: amount, Purpose: "seed_purchase", Status: "completed"})
	gt.NoError(t, err)
	return rec
}

func TestAppendAndList(t *testing.T) {
	ctx := context.Background()

	for name, repo := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			gt.NoError(t, repo.Append(ctx, newTransaction(t, "TXN-1", "u1", 500)))
			gt.NoError(t, repo.Append(ctx, newTransaction(t, "TXN-2", "u2", 300)))

			records, err := repo.List(ctx, model.KindTransactions)
			gt.NoError(t, err)
			gt.A(t, records).Length(2)
			gt.Equal(t, records[0].ID, model.RecordID("TXN-1"))

			var txn model.Transaction
			gt.NoError(t, records[0].Decode(&txn))
			gt.Equal(t, txn.AmountINR, 500)

			// Other kinds are untouched
			ledger, err := repo.List(ctx, model.KindLedger)
			gt.NoError(t, err)
			gt.A(t, ledger).Length(0)
		})
	}
}

func TestListByActor(t *testing.T) {
	ctx := context.Background()

	for name, repo := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			gt.NoError(t, repo.Append(ctx, newTransaction(t, "TXN-a1", "alice", 100)))
			gt.NoError(t, repo.Append(ctx, newTransaction(t, "TXN-b1", "bob", 200)))
			gt.NoError(t, repo.Append(ctx, newTransaction(t, "TXN-a2", "alice", 300)))

			records, err := repo.ListByActor(ctx, model.KindTransactions, "alice")
			gt.NoError(t, err)
			gt.A(t, records).Length(2)
			for _, rec := range records {
				gt.Equal(t, rec.ActorID, "alice")
			}
		})
	}
}

func TestAppendRejectsInvalid(t *testing.T) {
	ctx := context.Background()

	for name, repo := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			gt.Error(t, repo.Append(ctx, nil))

			missing, err := model.NewRecord("", model.KindLedger, "u1", time.Now(), &model.LedgerEntry{})
			gt.NoError(t, err)
			gt.Error(t, repo.Append(ctx, missing))

			bad, err := model.NewRecord("X-1", model.RecordKind("bogus"), "u1", time.Now(), &model.LedgerEntry{})
			gt.NoError(t, err)
			gt.Error(t, repo.Append(ctx, bad))

			_, err = repo.List(ctx, model.RecordKind("bogus"))
			gt.Error(t, err)
		})
	}
}

func TestConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	const n = 50

	for name, repo := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				i := i
				wg.Add(1)
				go func() {
					defer wg.Done()
					id := fmt.Sprintf("NTF-%04d", i)
					rec, err := model.NewRecord(model.RecordID(id), model.KindNotifications,
						fmt.Sprintf("user-%d", i%5), time.Now().UTC(), &model.Notification{
							Body:     "harvest pickup tomorrow",
							Category: "notification",
							Audience: "farmers",
						})
					gt.NoError(t, err)
					gt.NoError(t, repo.Append(ctx, rec))
				}()
			}
			wg.Wait()

			records, err := repo.List(ctx, model.KindNotifications)
			gt.NoError(t, err)
			gt.A(t, records).Length(n)

			seen := map[model.RecordID]bool{}
			for _, rec := range records {
				gt.False(t, seen[rec.ID])
				seen[rec.ID] = true
			}
		})
	}
}

func TestNewRecordID(t *testing.T) {
	now := time.Date(2025, time.March, 1, 12, 30, 45, 0, time.UTC)

	a := model.NewRecordID("TXN", now)
	b := model.NewRecordID("TXN", now)
	gt.S(t, string(a)).Contains("TXN-20250301123045-")
	gt.True(t, a != b)
}
