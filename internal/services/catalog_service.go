package services

import (
	"context"
	"fmt"

	"github.com/lotopos/animalitos-pos-backend/internal/models"
	"github.com/lotopos/animalitos-pos-backend/internal/repositories"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure CatalogServiceImpl implements CatalogService
var _ CatalogService = (*CatalogServiceImpl)(nil)

// CatalogServiceImpl serves the lottery catalog to the selling surface
type CatalogServiceImpl struct {
	lotteryRepo repositories.LotteryRepository
}

// NewCatalogService creates a new CatalogServiceImpl
func NewCatalogService(lotteryRepo repositories.LotteryRepository) *CatalogServiceImpl {
	return &CatalogServiceImpl{lotteryRepo: lotteryRepo}
}

// ActiveLotteries returns the lotteries currently open for sale
func (s *CatalogServiceImpl) ActiveLotteries(ctx context.Context) ([]*models.Lottery, error) {
	lotteries, err := s.lotteryRepo.FindActive(ctx)
	if err != nil {
		slog.Error("Failed to load lottery catalog", "error", err)
		return nil, fmt.Errorf("failed to load lottery catalog: %w", err)
	}
	return lotteries, nil
}
