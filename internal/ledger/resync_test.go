package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gemachapp/ledger-service/internal/models"
)

func seedTransaction(t *testing.T, store *fakeStore, clientID int64, added, subtracted string, at time.Time) {
	t.Helper()
	store.nextTransID++
	store.transactions[store.nextTransID] = &models.Transaction{
		ID:         store.nextTransID,
		ClientID:   clientID,
		TransDate:  at,
		Agent:      "tester",
		Added:      nullIfZero(dec(t, added)),
		Subtracted: nullIfZero(dec(t, subtracted)),
	}
}

func seedAccount(t *testing.T, store *fakeStore, clientID int64, balance string) {
	t.Helper()
	store.nextAccountID++
	store.accounts[store.nextAccountID] = &models.Account{
		ID:          store.nextAccountID,
		ClientID:    clientID,
		TotalAmount: nullDecimal(dec(t, balance)),
	}
}

func TestResyncAccountBalanceRepairsDrift(t *testing.T) {
	store := newFakeStore(1)
	e := testEngine(store)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedTransaction(t, store, 1, "100", "0", base)
	seedTransaction(t, store, 1, "0", "30", base.Add(time.Hour))
	seedAccount(t, store, 1, "999.99") // drifted projection

	balance, err := e.ResyncAccountBalance(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	mustEqual(t, balance, dec(t, "70"), "resynced balance")
	mustEqual(t, clientBalance(t, store, 1), dec(t, "70"), "stored balance")
}

func TestResyncAccountBalanceCreatesMissingAccount(t *testing.T) {
	store := newFakeStore(1)
	e := testEngine(store)
	seedTransaction(t, store, 1, "25.50", "0", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	balance, err := e.ResyncAccountBalance(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	mustEqual(t, balance, dec(t, "25.50"), "resynced balance")
	mustEqual(t, clientBalance(t, store, 1), dec(t, "25.50"), "stored balance")
}

func TestResyncAccountBalanceEmptyLedger(t *testing.T) {
	store := newFakeStore(1)
	e := testEngine(store)

	balance, err := e.ResyncAccountBalance(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	mustEqual(t, balance, decimal.Zero, "resynced balance")
}

func TestResyncAccountBalanceIdempotent(t *testing.T) {
	store := newFakeStore(1)
	e := testEngine(store)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedTransaction(t, store, 1, "100", "0", base)
	seedTransaction(t, store, 1, "0", "40", base.Add(time.Hour))

	first, err := e.ResyncAccountBalance(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.ResyncAccountBalance(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	mustEqual(t, second, first, "second resync")
	mustEqual(t, clientBalance(t, store, 1), dec(t, "60"), "stored balance")
	if len(store.accounts) != 1 {
		t.Fatalf("accounts = %d, want 1", len(store.accounts))
	}
}

func TestResyncAccountBalanceUnknownClient(t *testing.T) {
	store := newFakeStore()
	e := testEngine(store)

	_, err := e.ResyncAccountBalance(context.Background(), 7)
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("err = %v, want ErrClientNotFound", err)
	}
}

func TestResyncAllAccounts(t *testing.T) {
	store := newFakeStore(1, 2)
	e := testEngine(store)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedTransaction(t, store, 1, "100", "0", base)
	seedTransaction(t, store, 2, "0", "0", base) // no-impact row, still a ledger
	seedAccount(t, store, 1, "5") // drifted

	resynced, err := e.ResyncAllAccounts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if resynced != 2 {
		t.Fatalf("resynced = %d, want 2", resynced)
	}
	mustEqual(t, clientBalance(t, store, 1), dec(t, "100"), "client 1 balance")
	mustEqual(t, clientBalance(t, store, 2), decimal.Zero, "client 2 balance")
}

func TestRecalculateRunningTotals(t *testing.T) {
	store := newFakeStore(1)
	e := testEngine(store)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedTransaction(t, store, 1, "100", "0", base)
	seedTransaction(t, store, 1, "0", "30", base.Add(time.Hour))
	seedTransaction(t, store, 1, "50", "0", base.Add(2*time.Hour))

	if err := e.RecalculateRunningTotals(context.Background(), 1); err != nil {
		t.Fatal(err)
	}

	view := &fakeTx{store: store, accounts: store.accounts, transactions: store.transactions}
	rows, err := view.TransactionsForClient(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	wantAdded := []string{"100", "100", "150"}
	wantSubtracted := []string{"0", "30", "30"}
	for i, row := range rows {
		mustEqual(t, row.TotalAdded.Decimal, dec(t, wantAdded[i]), "total_added")
		mustEqual(t, row.TotalSubtracted.Decimal, dec(t, wantSubtracted[i]), "total_subtracted")
	}
}

func TestRecalculateRunningTotalsUnknownClient(t *testing.T) {
	store := newFakeStore()
	e := testEngine(store)

	err := e.RecalculateRunningTotals(context.Background(), 3)
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("err = %v, want ErrClientNotFound", err)
	}
}
