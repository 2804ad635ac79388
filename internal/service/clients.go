package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/gemachapp/ledger-service/internal/models"
	"github.com/gemachapp/ledger-service/internal/repository"
)

var nameRe = regexp.MustCompile(`^[A-Za-z\s]+$`)

func validateClient(c *models.Client) error {
	if len(c.FirstName) < 3 || len(c.FirstName) > 40 || !nameRe.MatchString(c.FirstName) {
		return fmt.Errorf("%w: first name must be 3-40 letters", ErrValidation)
	}
	if len(c.LastName) < 3 || len(c.LastName) > 40 || !nameRe.MatchString(c.LastName) {
		return fmt.Errorf("%w: last name must be 3-40 letters", ErrValidation)
	}
	if len(c.Phone) < 10 || len(c.Phone) > 18 {
		return fmt.Errorf("%w: phone must be 10-18 characters", ErrValidation)
	}
	return nil
}

// CreateClient registers a new client. The account is not created here; it
// appears lazily with the first transaction.
func (s *Service) CreateClient(ctx context.Context, client *models.Client) error {
	if err := validateClient(client); err != nil {
		return err
	}
	if client.OpenDate.IsZero() {
		client.OpenDate = time.Now().UTC()
	}
	if err := s.repo.CreateClient(ctx, client); err != nil {
		return err
	}
	s.log.Infof("Client created: %d (%s)", client.ID, client.FullName())
	return nil
}

// GetClient returns one client with the current balance
func (s *Service) GetClient(ctx context.Context, clientID int64) (*repository.ClientSummary, error) {
	return s.repo.GetClient(ctx, clientID)
}

// ListClients returns all clients with balances
func (s *Service) ListClients(ctx context.Context) ([]repository.ClientSummary, error) {
	return s.repo.ListClients(ctx)
}

// UpdateClient rewrites a client's profile and records field-level audit rows
// for every change.
func (s *Service) UpdateClient(ctx context.Context, updated *models.Client, byAgent string) error {
	if err := validateClient(updated); err != nil {
		return err
	}
	existing, err := s.repo.GetClient(ctx, updated.ID)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateClient(ctx, updated); err != nil {
		return err
	}
	s.recordUpdates(ctx, diffClient(&existing.Client, updated, byAgent, time.Now().UTC()))
	s.log.Infof("Client updated: %d", updated.ID)
	return nil
}

// DeleteClient removes a client; the account and all transactions cascade with
// it.
func (s *Service) DeleteClient(ctx context.Context, clientID int64) error {
	if err := s.repo.DeleteClient(ctx, clientID); err != nil {
		return err
	}
	s.log.Infof("Client deleted: %d", clientID)
	return nil
}
