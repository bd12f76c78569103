package app

import (
	"context"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

type SavedService struct {
	saved      domain.SavedRepository
	businesses domain.BusinessRepository
}

func NewSavedService(saved domain.SavedRepository, businesses domain.BusinessRepository) *SavedService {
	return &SavedService{saved: saved, businesses: businesses}
}

// Save is idempotent: saving an already-saved business succeeds.
func (s *SavedService) Save(ctx context.Context, userID string, businessID int64) error {
	if _, err := s.businesses.GetBusiness(ctx, businessID); err != nil {
		return err
	}
	return s.saved.SaveItem(ctx, userID, businessID)
}

func (s *SavedService) Unsave(ctx context.Context, userID string, businessID int64) error {
	return s.saved.UnsaveItem(ctx, userID, businessID)
}

func (s *SavedService) List(ctx context.Context, userID string, pg domain.PageQuery) ([]domain.Business, error) {
	return s.saved.ListSaved(ctx, userID, pg)
}

func (s *SavedService) Count(ctx context.Context, userID string) (int, error) {
	return s.saved.CountSaved(ctx, userID)
}
