package services

import (
	"context"
	"fmt"

	"github.com/lotopos/animalitos-pos-backend/internal/config"
	"github.com/lotopos/animalitos-pos-backend/internal/models"
	"github.com/lotopos/animalitos-pos-backend/internal/repositories"
	"github.com/lotopos/animalitos-pos-backend/internal/utils"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl authenticates operators and issues till-bound tokens
type AuthServiceImpl struct {
	operatorRepo repositories.OperatorRepository
	cfg          *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(operatorRepo repositories.OperatorRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		operatorRepo: operatorRepo,
		cfg:          cfg,
	}
}

// Login verifies the operator's credentials and returns a token carrying the
// till binding. Unknown usernames and wrong passwords are indistinguishable
// to the caller.
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	operator, err := s.operatorRepo.FindByUsername(ctx, req.Username)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		slog.Error("Operator lookup failed", "error", err, "username", req.Username)
		return nil, fmt.Errorf("failed to look up operator: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(req.Password)); err != nil {
		slog.Warn("Login rejected", "username", req.Username)
		return nil, models.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(operator.ID.Hex(), operator.Username, operator.TillID, s.cfg)
	if err != nil {
		slog.Error("Token generation failed", "error", err, "username", req.Username)
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("Operator logged in", "username", operator.Username, "tillId", operator.TillID)
	return &models.LoginResponse{
		Token:    token,
		TillID:   operator.TillID,
		TillName: operator.TillName,
		Currency: operator.Currency,
	}, nil
}
