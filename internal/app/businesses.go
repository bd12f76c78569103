package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

type BusinessService struct {
	repo     domain.BusinessRepository
	reviews  domain.ReviewRepository
	cache    domain.Cache
	geo      domain.Geocoder    // may be nil
	store    domain.ObjectStore // may be nil
	cacheTTL time.Duration
}

func NewBusinessService(
	repo domain.BusinessRepository,
	reviews domain.ReviewRepository,
	cache domain.Cache,
	geo domain.Geocoder,
	store domain.ObjectStore,
	ttl time.Duration,
) *BusinessService {
	return &BusinessService{repo: repo, reviews: reviews, cache: cache, geo: geo, store: store, cacheTTL: ttl}
}

type BusinessInput struct {
	Name        string
	Category    *string
	Description *string
	Phone       *string
	Website     *string
	Address     *string
	City        *string
	Country     *string
}

func (in BusinessInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Invalid("name is required")
	}
	if len(in.Name) > 200 {
		return domain.Invalid("name too long")
	}
	return nil
}

// Create inserts a listing. Geocoding is best-effort: an unresolvable
// address leaves the coordinates unset for the backfill worker.
func (s *BusinessService) Create(ctx context.Context, userID string, in BusinessInput) (domain.Business, error) {
	if err := in.validate(); err != nil {
		return domain.Business{}, err
	}
	b := domain.Business{
		Name:        sanitize(in.Name),
		Category:    in.Category,
		Description: sanitizePtr(in.Description),
		Phone:       in.Phone,
		Website:     in.Website,
		Address:     in.Address,
		City:        in.City,
		Country:     in.Country,
		Status:      domain.BusinessActive,
	}

	if s.geo != nil && b.Address != nil {
		gctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if pt, err := s.geo.Geocode(gctx, fullAddress(b)); err != nil {
			log.Warn().Err(err).Str("name", b.Name).Msg("geocode failed at create")
		} else {
			b.Lat, b.Lon = &pt.Lat, &pt.Lon
		}
		cancel()
	}

	id, err := s.repo.InsertBusiness(ctx, b)
	if err != nil {
		return domain.Business{}, err
	}
	return s.repo.GetBusiness(ctx, id)
}

func fullAddress(b domain.Business) string {
	parts := make([]string, 0, 3)
	for _, p := range []*string{b.Address, b.City, b.Country} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}
	return strings.Join(parts, ", ")
}

func sanitizePtr(p *string) *string {
	if p == nil {
		return nil
	}
	s := sanitize(*p)
	if s == "" {
		return nil
	}
	return &s
}

func (s *BusinessService) Get(ctx context.Context, id int64) (domain.Business, error) {
	key := bizKey(id)
	var b domain.Business
	if ok, _ := s.cache.Get(ctx, key, &b); ok {
		return b, nil
	}
	b, err := s.repo.GetBusiness(ctx, id)
	if err != nil {
		return domain.Business{}, err
	}
	_ = s.cache.Set(ctx, key, b, s.cacheTTL)
	return b, nil
}

func (s *BusinessService) List(ctx context.Context, q domain.BusinessQuery) (domain.BusinessesPage, error) {
	return s.repo.ListBusinesses(ctx, q)
}

func (s *BusinessService) ListReviews(ctx context.Context, id int64, pg domain.PageQuery) (domain.ReviewsPage, error) {
	key := reviewsKey(id, pg.Limit)
	var out domain.ReviewsPage
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	out, err := s.reviews.ListReviews(ctx, id, pg)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	_ = s.cache.Set(ctx, key, out, s.cacheTTL)
	return out, nil
}

// Update lets the owner or an admin edit a listing.
func (s *BusinessService) Update(ctx context.Context, actorID string, isAdmin bool, id int64, in BusinessInput) (domain.Business, error) {
	if err := in.validate(); err != nil {
		return domain.Business{}, err
	}
	b, err := s.repo.GetBusiness(ctx, id)
	if err != nil {
		return domain.Business{}, err
	}
	if !isAdmin && (b.OwnerID == nil || *b.OwnerID != actorID) {
		return domain.Business{}, domain.ErrForbidden
	}

	addressChanged := !strPtrEq(b.Address, in.Address)
	b.Name = sanitize(in.Name)
	b.Category = in.Category
	b.Description = sanitizePtr(in.Description)
	b.Phone = in.Phone
	b.Website = in.Website
	b.Address = in.Address
	b.City = in.City
	b.Country = in.Country
	if addressChanged {
		// drop coordinates; re-resolve now if possible, else backfill later
		b.Lat, b.Lon = nil, nil
		if s.geo != nil && b.Address != nil {
			gctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			if pt, gerr := s.geo.Geocode(gctx, fullAddress(b)); gerr == nil {
				b.Lat, b.Lon = &pt.Lat, &pt.Lon
			}
			cancel()
		}
	}

	if err := s.repo.UpdateBusiness(ctx, b); err != nil {
		return domain.Business{}, err
	}
	invalidateBusiness(ctx, s.cache, id)
	return s.repo.GetBusiness(ctx, id)
}

func strPtrEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Delete removes a listing. Bucket objects under businesses/{id}/ are
// deleted first; if that cleanup fails the row stays so nothing is orphaned.
func (s *BusinessService) Delete(ctx context.Context, actorID string, isAdmin bool, id int64) error {
	b, err := s.repo.GetBusiness(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && (b.OwnerID == nil || *b.OwnerID != actorID) {
		return domain.ErrForbidden
	}

	if s.store != nil {
		prefix := "businesses/" + strconv.FormatInt(id, 10) + "/"
		keys, lerr := s.store.List(ctx, prefix)
		if lerr != nil {
			return lerr
		}
		for _, k := range keys {
			if derr := s.store.Delete(ctx, k); derr != nil {
				return derr
			}
		}
	}

	if err := s.repo.DeleteBusiness(ctx, id); err != nil {
		return err
	}
	invalidateBusiness(ctx, s.cache, id)
	return nil
}
