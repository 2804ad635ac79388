package repository

import (
	"context"
	"fmt"

	"github.com/gemachapp/ledger-service/internal/models"
)

// InsertUpdateLogs writes a batch of field-level audit rows
func (r *Repository) InsertUpdateLogs(ctx context.Context, logs []models.UpdateLog) error {
	query := `
		INSERT INTO gemach.updates (table_name, object_id, column_name, prev_version, new_version, agent, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, u := range logs {
		if _, err := r.db.ExecContext(ctx, query,
			u.TableName, u.ObjectID, u.ColumnName, u.PrevVersion, u.NewVersion, u.Agent, u.Timestamp); err != nil {
			return fmt.Errorf("failed to insert update log: %w", err)
		}
	}
	return nil
}

const updateColumns = `record_id, table_name, object_id, column_name, prev_version, new_version, agent, changed_at`

// ListUpdates retrieves all audit rows, newest first
func (r *Repository) ListUpdates(ctx context.Context) ([]models.UpdateLog, error) {
	query := `SELECT ` + updateColumns + ` FROM gemach.updates ORDER BY changed_at DESC`
	return r.queryUpdates(ctx, query)
}

// UpdatesForObject retrieves the audit rows for one record of one table
func (r *Repository) UpdatesForObject(ctx context.Context, tableName, objectID string) ([]models.UpdateLog, error) {
	query := `SELECT ` + updateColumns + ` FROM gemach.updates WHERE table_name = $1 AND object_id = $2 ORDER BY changed_at DESC`
	return r.queryUpdates(ctx, query, tableName, objectID)
}

// UpdatesByAgent retrieves the audit rows written by one agent
func (r *Repository) UpdatesByAgent(ctx context.Context, agent string) ([]models.UpdateLog, error) {
	query := `SELECT ` + updateColumns + ` FROM gemach.updates WHERE agent = $1 ORDER BY changed_at DESC`
	return r.queryUpdates(ctx, query, agent)
}

func (r *Repository) queryUpdates(ctx context.Context, query string, args ...any) ([]models.UpdateLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list updates: %w", err)
	}
	defer rows.Close()

	var updates []models.UpdateLog
	for rows.Next() {
		var u models.UpdateLog
		if err := rows.Scan(&u.RecordID, &u.TableName, &u.ObjectID, &u.ColumnName,
			&u.PrevVersion, &u.NewVersion, &u.Agent, &u.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan update log: %w", err)
		}
		updates = append(updates, u)
	}
	return updates, rows.Err()
}
