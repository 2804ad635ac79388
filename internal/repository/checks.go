package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/gemachapp/ledger-service/internal/models"
)

// CreateCheck records an issued check. The check number comes from the caller;
// a duplicate number is rejected with ErrCheckExists.
func (r *Repository) CreateCheck(ctx context.Context, check *models.Check) error {
	query := `
		INSERT INTO gemach.checks (check_id, client_id, client_name, order_to, sum, trans_id, agent_id, agent_name, issued_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query, check.CheckID, check.ClientID, check.ClientName,
		check.OrderTo, check.Sum, check.TransID, check.AgentID, check.AgentName, check.IssuedDate)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("check %d: %w", check.CheckID, ErrCheckExists)
		}
		return fmt.Errorf("failed to create check: %w", err)
	}
	return nil
}

const checkColumns = `check_id, client_id, client_name, order_to, sum, trans_id, agent_id, agent_name, issued_date`

// ListChecks retrieves all issued checks
func (r *Repository) ListChecks(ctx context.Context) ([]models.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM gemach.checks ORDER BY check_id`
	return r.queryChecks(ctx, query)
}

// ChecksByClient retrieves the checks issued for one client
func (r *Repository) ChecksByClient(ctx context.Context, clientID int64) ([]models.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM gemach.checks WHERE client_id = $1 ORDER BY check_id`
	return r.queryChecks(ctx, query, clientID)
}

// ChecksByDate retrieves the checks issued on one calendar day
func (r *Repository) ChecksByDate(ctx context.Context, day time.Time) ([]models.Check, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	query := `SELECT ` + checkColumns + ` FROM gemach.checks WHERE issued_date >= $1 AND issued_date < $2 ORDER BY check_id`
	return r.queryChecks(ctx, query, from, to)
}

func (r *Repository) queryChecks(ctx context.Context, query string, args ...any) ([]models.Check, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	defer rows.Close()

	var checks []models.Check
	for rows.Next() {
		var c models.Check
		if err := rows.Scan(&c.CheckID, &c.ClientID, &c.ClientName, &c.OrderTo,
			&c.Sum, &c.TransID, &c.AgentID, &c.AgentName, &c.IssuedDate); err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}
