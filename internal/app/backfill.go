package app

import (
	"context"
	"errors"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

// BackfillService resolves coordinates for listings that were created while
// the geocoding providers were unavailable.
type BackfillService struct {
	repo  domain.BusinessRepository
	cache domain.Cache
	geo   domain.Geocoder
}

func NewBackfillService(repo domain.BusinessRepository, cache domain.Cache, geo domain.Geocoder) *BackfillService {
	return &BackfillService{repo: repo, cache: cache, geo: geo}
}

// Backfill geocodes one business and persists the result. Unresolvable
// addresses are left alone for a later run.
func (s *BackfillService) Backfill(ctx context.Context, b domain.Business) error {
	addr := fullAddress(b)
	if addr == "" {
		return nil
	}
	pt, err := s.geo.Geocode(ctx, addr)
	if errors.Is(err, domain.ErrAddressUnresolvable) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.repo.SetBusinessCoords(ctx, b.ID, pt.Lat, pt.Lon); err != nil {
		return err
	}
	invalidateBusiness(ctx, s.cache, b.ID)
	return nil
}
