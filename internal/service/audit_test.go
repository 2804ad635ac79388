package service

import (
	"testing"
	"time"

	"github.com/gemachapp/ledger-service/internal/models"
)

func TestDiffClient(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	old := &models.Client{
		ID:        7,
		FirstName: "Moshe",
		LastName:  "Katz",
		Phone:     "0521234567",
		Email:     "moshe@example.com",
	}
	updated := &models.Client{
		ID:        7,
		FirstName: "Moshe",
		LastName:  "Katz",
		Phone:     "0529999999",
		Email:     "moshe.katz@example.com",
	}

	logs := diffClient(old, updated, "admin", at)
	if len(logs) != 2 {
		t.Fatalf("logs = %d, want 2", len(logs))
	}

	byColumn := map[string]models.UpdateLog{}
	for _, l := range logs {
		byColumn[l.ColumnName] = l
	}
	phone, ok := byColumn["phone"]
	if !ok {
		t.Fatal("no phone change recorded")
	}
	if phone.PrevVersion != "0521234567" || phone.NewVersion != "0529999999" {
		t.Fatalf("phone change = %q -> %q", phone.PrevVersion, phone.NewVersion)
	}
	if phone.TableName != "clients" || phone.ObjectID != "7" || phone.Agent != "admin" {
		t.Fatalf("unexpected row metadata: %+v", phone)
	}
	if !phone.Timestamp.Equal(at) {
		t.Fatalf("timestamp = %v, want %v", phone.Timestamp, at)
	}
	if _, ok := byColumn["email"]; !ok {
		t.Fatal("no email change recorded")
	}
}

func TestDiffClientNoChanges(t *testing.T) {
	c := &models.Client{ID: 1, FirstName: "Sara", LastName: "Levi", Phone: "0520000000"}
	logs := diffClient(c, c, "admin", time.Now())
	if len(logs) != 0 {
		t.Fatalf("logs = %d, want 0", len(logs))
	}
}

func TestDiffAgentMasksPassword(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	old := &models.Agent{ID: 3, Name: "dov", PasswordHash: "$2a$10$aaaa"}
	updated := &models.Agent{ID: 3, Name: "dov", PasswordHash: "$2a$10$bbbb"}

	logs := diffAgent(old, updated, "admin", at)
	if len(logs) != 1 {
		t.Fatalf("logs = %d, want 1", len(logs))
	}
	row := logs[0]
	if row.ColumnName != "password" {
		t.Fatalf("column = %q, want password", row.ColumnName)
	}
	if row.PrevVersion != "" || row.NewVersion != "changed" {
		t.Fatalf("password hash leaked into audit row: %+v", row)
	}
}

func TestDiffAgentNameChange(t *testing.T) {
	at := time.Now()
	old := &models.Agent{ID: 3, Name: "dov", PasswordHash: "h"}
	updated := &models.Agent{ID: 3, Name: "dov.b", PasswordHash: "h"}

	logs := diffAgent(old, updated, "admin", at)
	if len(logs) != 1 {
		t.Fatalf("logs = %d, want 1", len(logs))
	}
	if logs[0].PrevVersion != "dov" || logs[0].NewVersion != "dov.b" {
		t.Fatalf("name change = %q -> %q", logs[0].PrevVersion, logs[0].NewVersion)
	}
}
