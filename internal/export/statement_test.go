package export

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/gemachapp/ledger-service/internal/models"
)

func nd(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func TestBuildXML(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	st := Statement{
		Client: models.Client{
			ID:        7,
			FirstName: "Moshe",
			LastName:  "Katz",
			Phone:     "0521234567",
			Email:     "moshe@example.com",
		},
		Transactions: []models.Transaction{
			{ID: 1, ClientID: 7, TransDate: base, Agent: "dov", Added: nd("100")},
			{ID: 2, ClientID: 7, TransDate: base.Add(time.Hour), Agent: "dov", Subtracted: nd("40")},
		},
		Balance:     decimal.RequireFromString("60"),
		GeneratedAt: base.Add(2 * time.Hour),
	}

	out, err := BuildXML(st)
	if err != nil {
		t.Fatal(err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(out); err != nil {
		t.Fatalf("output is not parseable XML: %v", err)
	}

	root := doc.SelectElement("statement")
	if root == nil {
		t.Fatal("no statement root element")
	}
	if got := root.SelectAttrValue("generated_at", ""); got != "2025-06-01T12:00:00Z" {
		t.Fatalf("generated_at = %q", got)
	}

	client := root.SelectElement("client")
	if client == nil {
		t.Fatal("no client element")
	}
	if got := client.SelectElement("name").Text(); got != "Moshe Katz" {
		t.Fatalf("client name = %q", got)
	}
	if got := client.SelectElement("email").Text(); got != "moshe@example.com" {
		t.Fatalf("client email = %q", got)
	}

	rows := root.SelectElement("transactions").SelectElements("transaction")
	if len(rows) != 2 {
		t.Fatalf("transactions = %d, want 2", len(rows))
	}
	if got := rows[0].SelectElement("added").Text(); got != "100.00" {
		t.Fatalf("first added = %q", got)
	}
	if rows[0].SelectElement("subtracted") != nil {
		t.Fatal("first row has a subtracted element for a null column")
	}
	if got := rows[0].SelectElement("running_balance").Text(); got != "100.00" {
		t.Fatalf("first running balance = %q", got)
	}
	if got := rows[1].SelectElement("running_balance").Text(); got != "60.00" {
		t.Fatalf("second running balance = %q", got)
	}

	if got := root.SelectElement("balance").Text(); got != "60.00" {
		t.Fatalf("balance = %q", got)
	}
}

func TestBuildXMLEmptyLedger(t *testing.T) {
	st := Statement{
		Client:      models.Client{ID: 1, FirstName: "Sara", LastName: "Levi", Phone: "0520000000"},
		Balance:     decimal.Zero,
		GeneratedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	out, err := BuildXML(st)
	if err != nil {
		t.Fatal(err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(out); err != nil {
		t.Fatal(err)
	}
	root := doc.SelectElement("statement")
	if len(root.SelectElement("transactions").SelectElements("transaction")) != 0 {
		t.Fatal("expected empty transactions element")
	}
	if root.SelectElement("client").SelectElement("email") != nil {
		t.Fatal("email element present for empty email")
	}
	if got := root.SelectElement("balance").Text(); got != "0.00" {
		t.Fatalf("balance = %q", got)
	}
}
