package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gemachapp/ledger-service/internal/models"
)

// CreateAgent registers a new agent with a hashed password
func (s *Service) CreateAgent(ctx context.Context, name, password string) (*models.Agent, error) {
	if len(name) < 3 || len(name) > 40 || !nameRe.MatchString(name) {
		return nil, fmt.Errorf("%w: agent name must be 3-40 letters", ErrValidation)
	}
	if len(password) < 6 || len(password) > 40 {
		return nil, fmt.Errorf("%w: password must be 6-40 characters", ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	agent := &models.Agent{
		Name:         name,
		PasswordHash: string(hash),
		OpenDate:     time.Now().UTC(),
	}
	if err := s.repo.CreateAgent(ctx, agent); err != nil {
		return nil, err
	}
	s.log.Infof("Agent created: %d (%s)", agent.ID, agent.Name)
	return agent, nil
}

// GetAgent returns one agent
func (s *Service) GetAgent(ctx context.Context, id int64) (*models.Agent, error) {
	return s.repo.GetAgent(ctx, id)
}

// ListAgents returns all agents
func (s *Service) ListAgents(ctx context.Context) ([]models.Agent, error) {
	return s.repo.ListAgents(ctx)
}

// UpdateAgent renames an agent and optionally resets the password, recording
// audit rows for the changes.
func (s *Service) UpdateAgent(ctx context.Context, id int64, name, password, byAgent string) (*models.Agent, error) {
	if len(name) < 3 || len(name) > 40 || !nameRe.MatchString(name) {
		return nil, fmt.Errorf("%w: agent name must be 3-40 letters", ErrValidation)
	}
	existing, err := s.repo.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Name = name
	if password != "" {
		if len(password) < 6 || len(password) > 40 {
			return nil, fmt.Errorf("%w: password must be 6-40 characters", ErrValidation)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updated.PasswordHash = string(hash)
	}

	if err := s.repo.UpdateAgent(ctx, &updated); err != nil {
		return nil, err
	}
	s.recordUpdates(ctx, diffAgent(existing, &updated, byAgent, time.Now().UTC()))
	s.log.Infof("Agent updated: %d", id)
	return &updated, nil
}

// DeleteAgent removes an agent
func (s *Service) DeleteAgent(ctx context.Context, id int64) error {
	if err := s.repo.DeleteAgent(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Agent deleted: %d", id)
	return nil
}
