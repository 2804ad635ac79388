package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gemachapp/ledger-service/internal/ledger"
	"github.com/gemachapp/ledger-service/internal/models"
)

// IssueCheck records a paper check. The check number is supplied by the caller
// to match the physical checkbook; duplicates are rejected by the store.
func (s *Service) IssueCheck(ctx context.Context, check *models.Check) error {
	if check.CheckID <= 0 {
		return fmt.Errorf("%w: check number is required", ErrValidation)
	}
	if !check.Sum.IsPositive() {
		return fmt.Errorf("%w: sum must be greater than zero", ErrValidation)
	}

	client, err := s.repo.GetClient(ctx, check.ClientID)
	if err != nil {
		return ledger.ErrClientNotFound
	}
	if check.ClientName == "" {
		check.ClientName = client.FullName()
	}
	check.IssuedDate = time.Now().UTC()

	if err := s.repo.CreateCheck(ctx, check); err != nil {
		return err
	}
	s.log.Infof("Check %d issued for client %d", check.CheckID, check.ClientID)
	return nil
}

// ListChecks returns all issued checks
func (s *Service) ListChecks(ctx context.Context) ([]models.Check, error) {
	return s.repo.ListChecks(ctx)
}

// ChecksByClient returns the checks issued for one client
func (s *Service) ChecksByClient(ctx context.Context, clientID int64) ([]models.Check, error) {
	return s.repo.ChecksByClient(ctx, clientID)
}

// ChecksByDate returns the checks issued on one calendar day
func (s *Service) ChecksByDate(ctx context.Context, day time.Time) ([]models.Check, error) {
	return s.repo.ChecksByDate(ctx, day)
}
