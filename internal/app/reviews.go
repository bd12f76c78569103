package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hjnengare/sayso-web-sub011/internal/adapters/observability"
	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

type ReviewService struct {
	reviews    domain.ReviewRepository
	businesses domain.BusinessRepository
	notifs     domain.NotificationRepository
	cache      domain.Cache
	store      domain.ObjectStore // may be nil

	window    time.Duration
	maxPerWin int
	flagMax   int
	now       func() time.Time
}

func NewReviewService(
	reviews domain.ReviewRepository,
	businesses domain.BusinessRepository,
	notifs domain.NotificationRepository,
	cache domain.Cache,
	store domain.ObjectStore,
	window time.Duration,
	maxPerWin, flagMax int,
) *ReviewService {
	return &ReviewService{
		reviews:    reviews,
		businesses: businesses,
		notifs:     notifs,
		cache:      cache,
		store:      store,
		window:     window,
		maxPerWin:  maxPerWin,
		flagMax:    flagMax,
		now:        time.Now,
	}
}

type SubmitReviewInput struct {
	Rating    int
	Title     string
	Text      string
	Image     []byte
	ImageType string
}

// Submit runs the full review pipeline: validate, sanitize, moderate,
// rate-limit, uniqueness, insert, best-effort image upload and stats
// recompute, cache invalidation.
func (s *ReviewService) Submit(ctx context.Context, userID string, businessID int64, in SubmitReviewInput) (domain.Review, error) {
	if _, err := s.businesses.GetBusiness(ctx, businessID); err != nil {
		return domain.Review{}, err
	}
	if in.Rating < 1 || in.Rating > 5 {
		return domain.Review{}, domain.Invalid("rating must be between 1 and 5")
	}
	title := sanitize(in.Title)
	text := sanitize(in.Text)
	if len(title) > 200 {
		return domain.Review{}, domain.Invalid("title too long")
	}
	if len(text) > 5000 {
		return domain.Review{}, domain.Invalid("text too long")
	}

	// windowed counting query against the store, not an in-memory limiter
	n, err := s.reviews.CountReviewsSince(ctx, userID, s.now().Add(-s.window))
	if err != nil {
		return domain.Review{}, err
	}
	if n >= s.maxPerWin {
		return domain.Review{}, domain.ErrReviewRateLimited
	}

	if has, err := s.reviews.HasReview(ctx, businessID, userID); err != nil {
		return domain.Review{}, err
	} else if has {
		return domain.Review{}, domain.ErrReviewDuplicate
	}

	status := moderate(title, text)
	observability.ObserveModeration(status)

	rv := domain.Review{
		BusinessID: businessID,
		UserID:     userID,
		Rating:     in.Rating,
		Status:     status,
	}
	if title != "" {
		rv.Title = &title
	}
	if text != "" {
		rv.Text = &text
	}

	// image upload is best-effort: a failed upload never blocks the review
	if len(in.Image) > 0 && s.store != nil {
		key := fmt.Sprintf("businesses/%d/reviews/%s-%d.img", businessID, userID, s.now().UnixNano())
		if url, uerr := s.store.Upload(ctx, key, in.Image, in.ImageType); uerr != nil {
			log.Warn().Err(uerr).Int64("business", businessID).Msg("review image upload failed")
		} else {
			rv.ImageURL = &url
		}
	}

	id, err := s.reviews.InsertReview(ctx, rv)
	if err != nil {
		return domain.Review{}, err
	}
	rv.ID = id
	rv.CreatedAt = s.now()

	s.afterReviewChange(ctx, businessID)
	return rv, nil
}

// Delete removes a review (author or admin) and recomputes stats.
func (s *ReviewService) Delete(ctx context.Context, actorID string, isAdmin bool, reviewID int64) error {
	rv, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if rv.UserID != actorID && !isAdmin {
		return domain.ErrForbidden
	}
	if err := s.reviews.DeleteReview(ctx, reviewID); err != nil {
		return err
	}
	s.afterReviewChange(ctx, rv.BusinessID)
	return nil
}

// Flag reports a review for moderation, with its own windowed rate limit.
func (s *ReviewService) Flag(ctx context.Context, userID string, reviewID int64, reason string) error {
	if _, err := s.reviews.GetReview(ctx, reviewID); err != nil {
		return err
	}
	n, err := s.reviews.CountFlagsSince(ctx, userID, s.now().Add(-s.window))
	if err != nil {
		return err
	}
	if n >= s.flagMax {
		return domain.ErrFlagRateLimited
	}
	reason = sanitize(reason)
	if len(reason) > 500 {
		return domain.Invalid("reason too long")
	}
	return s.reviews.InsertFlag(ctx, reviewID, userID, reason)
}

func (s *ReviewService) ListFlagged(ctx context.Context, pg domain.PageQuery) (domain.ReviewsPage, error) {
	return s.reviews.ListFlagged(ctx, pg)
}

// Moderate applies an admin verdict: "publish" or "remove".
// Moderate applies an admin verdict and returns the review's new status.
func (s *ReviewService) Moderate(ctx context.Context, reviewID int64, action string) (string, error) {
	var status string
	switch action {
	case "publish":
		status = domain.ReviewPublished
	case "remove":
		status = domain.ReviewRemoved
	default:
		return "", domain.Invalid("action must be publish or remove")
	}
	rv, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return "", err
	}
	if err := s.reviews.SetReviewStatus(ctx, reviewID, status); err != nil {
		return "", err
	}
	observability.ObserveModeration(status)
	s.afterReviewChange(ctx, rv.BusinessID)

	if nerr := s.notifs.InsertNotification(ctx, domain.Notification{
		UserID: rv.UserID,
		Kind:   domain.NotifReviewModerated,
		Body:   "Your review was " + status + " after moderation.",
	}); nerr != nil {
		log.Warn().Err(nerr).Int64("review", reviewID).Msg("moderation notification failed")
	}
	return status, nil
}

// afterReviewChange recomputes business stats and drops caches. Both are
// best-effort: the review write already succeeded.
func (s *ReviewService) afterReviewChange(ctx context.Context, businessID int64) {
	var err error
	for i := 0; i < 3; i++ {
		if err = s.businesses.RecalcBusinessStats(ctx, businessID); err == nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			i = 3
		case <-time.After(time.Duration(1<<i) * 100 * time.Millisecond):
		}
	}
	if err != nil {
		log.Warn().Err(err).Int64("business", businessID).Msg("stats recompute failed")
	}
	invalidateBusiness(ctx, s.cache, businessID)
}
