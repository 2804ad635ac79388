package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gemachapp/ledger-service/internal/models"
)

// CreateAgent creates a new agent in the database
func (r *Repository) CreateAgent(ctx context.Context, agent *models.Agent) error {
	query := `
		INSERT INTO gemach.agents (name, password_hash, open_date)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, agent.Name, agent.PasswordHash, agent.OpenDate).
		Scan(&agent.ID)
	if err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}
	return nil
}

// GetAgent retrieves an agent by id
func (r *Repository) GetAgent(ctx context.Context, id int64) (*models.Agent, error) {
	agent := &models.Agent{}
	query := `SELECT id, name, password_hash, open_date FROM gemach.agents WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&agent.ID, &agent.Name, &agent.PasswordHash, &agent.OpenDate)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("agent %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load agent: %w", err)
	}
	return agent, nil
}

// FindAgentByName retrieves an agent by name, for login
func (r *Repository) FindAgentByName(ctx context.Context, name string) (*models.Agent, error) {
	agent := &models.Agent{}
	query := `SELECT id, name, password_hash, open_date FROM gemach.agents WHERE name = $1`
	err := r.db.QueryRowContext(ctx, query, name).
		Scan(&agent.ID, &agent.Name, &agent.PasswordHash, &agent.OpenDate)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("agent %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find agent: %w", err)
	}
	return agent, nil
}

// ListAgents retrieves all agents
func (r *Repository) ListAgents(ctx context.Context) ([]models.Agent, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, password_hash, open_date FROM gemach.agents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	defer rows.Close()

	var agents []models.Agent
	for rows.Next() {
		var a models.Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.PasswordHash, &a.OpenDate); err != nil {
			return nil, fmt.Errorf("failed to scan agent: %w", err)
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

// UpdateAgent rewrites an agent's name and password hash
func (r *Repository) UpdateAgent(ctx context.Context, agent *models.Agent) error {
	query := `UPDATE gemach.agents SET name = $2, password_hash = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, agent.ID, agent.Name, agent.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to update agent: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("agent %d: %w", agent.ID, ErrNotFound)
	}
	return nil
}

// DeleteAgent removes an agent
func (r *Repository) DeleteAgent(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM gemach.agents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete agent: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("agent %d: %w", id, ErrNotFound)
	}
	return nil
}

// CreateAdmin creates a new admin in the database
func (r *Repository) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	query := `
		INSERT INTO gemach.admins (name, password_hash)
		VALUES ($1, $2)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, admin.Name, admin.PasswordHash).Scan(&admin.ID)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

// FindAdminByName retrieves an admin by name, for login
func (r *Repository) FindAdminByName(ctx context.Context, name string) (*models.Admin, error) {
	admin := &models.Admin{}
	query := `SELECT id, name, password_hash FROM gemach.admins WHERE name = $1`
	err := r.db.QueryRowContext(ctx, query, name).
		Scan(&admin.ID, &admin.Name, &admin.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("admin %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return admin, nil
}
