package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/gemachapp/ledger-service/internal/config"
	"github.com/gemachapp/ledger-service/internal/ledger"
	"github.com/gemachapp/ledger-service/internal/models"
	"github.com/gemachapp/ledger-service/internal/repository"
	"github.com/gemachapp/ledger-service/internal/utils/email"
)

// ErrValidation marks a rejected request payload
var ErrValidation = errors.New("validation failed")

// ErrInvalidCredentials is returned on failed logins without revealing which
// part was wrong
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service handles business logic around the ledger engine: directory CRUD,
// authentication, check issuance, audit recording and notifications.
type Service struct {
	repo   *repository.Repository
	engine *ledger.Engine
	sender *email.Sender
	cfg    *config.Config
	log    *logrus.Logger
}

// NewService initializes a new service. sender may be nil when SMTP is not
// configured; notifications are then skipped.
func NewService(repo *repository.Repository, engine *ledger.Engine, sender *email.Sender, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{repo: repo, engine: engine, sender: sender, cfg: cfg, log: log}
}

type authClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// LoginAdmin authenticates an admin and returns a JWT token
func (s *Service) LoginAdmin(ctx context.Context, name, password string) (string, error) {
	admin, err := s.repo.FindAdminByName(ctx, name)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := s.issueToken(admin.ID, "admin")
	if err != nil {
		return "", err
	}
	s.log.Infof("Admin logged in: %s", admin.Name)
	return token, nil
}

// LoginAgent authenticates an agent and returns a JWT token
func (s *Service) LoginAgent(ctx context.Context, name, password string) (string, error) {
	agent, err := s.repo.FindAgentByName(ctx, name)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := s.issueToken(agent.ID, "agent")
	if err != nil {
		return "", err
	}
	s.log.Infof("Agent logged in: %s", agent.Name)
	return token, nil
}

func (s *Service) issueToken(id int64, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", id),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	})
	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// CreateAdmin creates a new admin with a hashed password
func (s *Service) CreateAdmin(ctx context.Context, name, password string) (*models.Admin, error) {
	if len(name) < 3 || len(name) > 40 {
		return nil, fmt.Errorf("%w: name must be 3-40 characters", ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	admin := &models.Admin{Name: name, PasswordHash: string(hash)}
	if err := s.repo.CreateAdmin(ctx, admin); err != nil {
		return nil, err
	}
	s.log.Infof("Admin created: %s", admin.Name)
	return admin, nil
}

// SendEmail sends an ad-hoc email through the configured sender
func (s *Service) SendEmail(to, subject, body string) error {
	if to == "" || subject == "" || body == "" {
		return fmt.Errorf("%w: to, subject and body are required", ErrValidation)
	}
	if s.sender == nil {
		return fmt.Errorf("email sender is not configured")
	}
	return s.sender.Send(to, subject, body)
}
