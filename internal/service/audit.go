package service

import (
	"context"
	"strconv"
	"time"

	"github.com/gemachapp/ledger-service/internal/models"
)

// diffClient produces one audit row per changed profile field. The ledger is
// not audited here; balance history is already the transaction table.
func diffClient(old, updated *models.Client, byAgent string, at time.Time) []models.UpdateLog {
	objectID := strconv.FormatInt(old.ID, 10)
	var logs []models.UpdateLog
	record := func(column, prev, next string) {
		if prev == next {
			return
		}
		logs = append(logs, models.UpdateLog{
			TableName:   "clients",
			ObjectID:    objectID,
			ColumnName:  column,
			PrevVersion: prev,
			NewVersion:  next,
			Agent:       byAgent,
			Timestamp:   at,
		})
	}

	record("first_name", old.FirstName, updated.FirstName)
	record("last_name", old.LastName, updated.LastName)
	record("phone", old.Phone, updated.Phone)
	record("email", old.Email, updated.Email)
	record("position", old.Position, updated.Position)
	record("comments", old.Comments, updated.Comments)
	record("agent", old.Agent, updated.Agent)
	record("update_by_email", strconv.FormatBool(old.UpdateByEmail), strconv.FormatBool(updated.UpdateByEmail))
	return logs
}

// diffAgent produces audit rows for an agent profile change. Password hashes
// are recorded only as a marker, never the hash itself.
func diffAgent(old, updated *models.Agent, byAgent string, at time.Time) []models.UpdateLog {
	objectID := strconv.FormatInt(old.ID, 10)
	var logs []models.UpdateLog
	if old.Name != updated.Name {
		logs = append(logs, models.UpdateLog{
			TableName:   "agents",
			ObjectID:    objectID,
			ColumnName:  "name",
			PrevVersion: old.Name,
			NewVersion:  updated.Name,
			Agent:       byAgent,
			Timestamp:   at,
		})
	}
	if old.PasswordHash != updated.PasswordHash {
		logs = append(logs, models.UpdateLog{
			TableName:  "agents",
			ObjectID:   objectID,
			ColumnName: "password",
			NewVersion: "changed",
			Agent:      byAgent,
			Timestamp:  at,
		})
	}
	return logs
}

// recordUpdates writes audit rows best-effort. The audit log is a side-effect
// sink; a write failure must not fail the mutation it describes.
func (s *Service) recordUpdates(ctx context.Context, logs []models.UpdateLog) {
	if len(logs) == 0 {
		return
	}
	if err := s.repo.InsertUpdateLogs(ctx, logs); err != nil {
		s.log.Errorf("Failed to record %d update log rows: %v", len(logs), err)
	}
}

// ListUpdates returns all audit rows, newest first
func (s *Service) ListUpdates(ctx context.Context) ([]models.UpdateLog, error) {
	return s.repo.ListUpdates(ctx)
}

// UpdatesForClient returns the audit rows for one client record
func (s *Service) UpdatesForClient(ctx context.Context, clientID int64) ([]models.UpdateLog, error) {
	return s.repo.UpdatesForObject(ctx, "clients", strconv.FormatInt(clientID, 10))
}

// UpdatesForAgent returns the audit rows for one agent record
func (s *Service) UpdatesForAgent(ctx context.Context, agentID int64) ([]models.UpdateLog, error) {
	return s.repo.UpdatesForObject(ctx, "agents", strconv.FormatInt(agentID, 10))
}

// UpdatesByAgent returns the audit rows written by one agent
func (s *Service) UpdatesByAgent(ctx context.Context, agent string) ([]models.UpdateLog, error) {
	return s.repo.UpdatesByAgent(ctx, agent)
}
