package app

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/hjnengare/sayso-web-sub011/internal/adapters/observability"
	"github.com/hjnengare/sayso-web-sub011/internal/domain"
)

type ClaimService struct {
	claims     domain.ClaimRepository
	businesses domain.BusinessRepository
	notifs     domain.NotificationRepository
	sms        domain.SMSSender
	email      domain.EmailSender // may be nil

	otpTTL      time.Duration
	resendWait  time.Duration
	maxAttempts int
	now         func() time.Time
}

func NewClaimService(
	claims domain.ClaimRepository,
	businesses domain.BusinessRepository,
	notifs domain.NotificationRepository,
	sms domain.SMSSender,
	email domain.EmailSender,
	otpTTL, resendWait time.Duration,
	maxAttempts int,
) *ClaimService {
	return &ClaimService{
		claims:      claims,
		businesses:  businesses,
		notifs:      notifs,
		sms:         sms,
		email:       email,
		otpTTL:      otpTTL,
		resendWait:  resendWait,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

var phoneRe = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// Create opens a claim on a business. At most one open claim may exist per
// business at a time.
func (s *ClaimService) Create(ctx context.Context, userID, email string, businessID int64, phone string) (domain.Claim, error) {
	if !phoneRe.MatchString(phone) {
		return domain.Claim{}, domain.Invalid("phone must be E.164-like digits")
	}
	b, err := s.businesses.GetBusiness(ctx, businessID)
	if err != nil {
		return domain.Claim{}, err
	}
	if b.OwnerID != nil {
		return domain.Claim{}, domain.ErrClaimAlreadyExists
	}
	if _, err := s.claims.GetOpenClaim(ctx, businessID); err == nil {
		return domain.Claim{}, domain.ErrClaimAlreadyExists
	} else if err != domain.ErrClaimNotFound {
		return domain.Claim{}, err
	}

	c := domain.Claim{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		UserID:     userID,
		Phone:      phone,
		Status:     domain.ClaimPending,
		CreatedAt:  s.now(),
		UpdatedAt:  s.now(),
	}
	if email != "" {
		c.Email = &email
	}
	if err := s.claims.InsertClaim(ctx, c); err != nil {
		return domain.Claim{}, err
	}
	return c, nil
}

func (s *ClaimService) Get(ctx context.Context, actorID string, isAdmin bool, id string) (domain.Claim, error) {
	c, err := s.claims.GetClaim(ctx, id)
	if err != nil {
		return domain.Claim{}, err
	}
	if c.UserID != actorID && !isAdmin {
		return domain.Claim{}, domain.ErrForbidden
	}
	return c, nil
}

// SendOTP issues a fresh 6-digit code to the claim's phone number. The code
// is bcrypt-hashed at rest; only the SMS carries the cleartext. A pending
// claim moves to under_review on first send.
func (s *ClaimService) SendOTP(ctx context.Context, actorID, claimID string) error {
	c, err := s.claims.GetClaim(ctx, claimID)
	if err != nil {
		return err
	}
	if c.UserID != actorID {
		return domain.ErrForbidden
	}
	if !domain.ClaimOpen(c.Status) {
		return domain.ErrClaimInvalidTransition
	}
	if c.OTPSentAt != nil && s.now().Sub(*c.OTPSentAt) < s.resendWait {
		observability.ObserveOTP("rate_limited")
		return domain.ErrOTPSendRateLimited
	}

	code, err := otpCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.sms.SendSMS(ctx, c.Phone, "Your sayso verification code is "+code); err != nil {
		return fmt.Errorf("otp delivery failed: %w", err)
	}

	h := string(hash)
	exp := s.now().Add(s.otpTTL)
	sent := s.now()
	c.OTPHash = &h
	c.OTPExpiresAt = &exp
	c.OTPSentAt = &sent
	c.OTPAttempts = 0
	if c.Status == domain.ClaimPending {
		c.Status = domain.ClaimUnderReview
	}
	if err := s.claims.UpdateClaim(ctx, c); err != nil {
		return err
	}
	observability.ObserveOTP("sent")
	return nil
}

// VerifyOTP checks the submitted code against the stored hash, enforcing
// expiry and the attempt budget. Success verifies the claim and assigns
// business ownership.
func (s *ClaimService) VerifyOTP(ctx context.Context, actorID, claimID, code string) (domain.Claim, error) {
	c, err := s.claims.GetClaim(ctx, claimID)
	if err != nil {
		return domain.Claim{}, err
	}
	if c.UserID != actorID {
		return domain.Claim{}, domain.ErrForbidden
	}
	if c.Status != domain.ClaimUnderReview {
		return domain.Claim{}, domain.ErrClaimInvalidTransition
	}
	if c.OTPHash == nil || c.OTPExpiresAt == nil {
		return domain.Claim{}, domain.ErrOTPNotIssued
	}
	if s.now().After(*c.OTPExpiresAt) {
		observability.ObserveOTP("expired")
		return domain.Claim{}, domain.ErrOTPExpired
	}
	if c.OTPAttempts >= s.maxAttempts {
		return domain.Claim{}, domain.ErrOTPTooManyAttempts
	}

	if bcrypt.CompareHashAndPassword([]byte(*c.OTPHash), []byte(code)) != nil {
		c.OTPAttempts++
		if uerr := s.claims.UpdateClaim(ctx, c); uerr != nil {
			return domain.Claim{}, uerr
		}
		observability.ObserveOTP("invalid")
		if c.OTPAttempts >= s.maxAttempts {
			return domain.Claim{}, domain.ErrOTPTooManyAttempts
		}
		return domain.Claim{}, domain.ErrOTPInvalid
	}

	// ownership first: if it fails the claim stays under_review and the
	// caller can retry the same code
	if err := s.businesses.SetBusinessOwner(ctx, c.BusinessID, c.UserID); err != nil {
		return domain.Claim{}, err
	}
	c.Status = domain.ClaimVerified
	c.OTPHash = nil
	c.OTPExpiresAt = nil
	if err := s.claims.UpdateClaim(ctx, c); err != nil {
		return domain.Claim{}, err
	}
	observability.ObserveOTP("verified")
	s.notifyVerdict(ctx, c, domain.NotifClaimVerified, "Your business claim was verified.")
	return c, nil
}

// Approve is the admin path to a verified claim. A pending claim passes
// through under_review so the transition order is preserved.
func (s *ClaimService) Approve(ctx context.Context, claimID string) (domain.Claim, error) {
	c, err := s.claims.GetClaim(ctx, claimID)
	if err != nil {
		return domain.Claim{}, err
	}
	if c.Status == domain.ClaimPending {
		c.Status = domain.ClaimUnderReview
	}
	if !domain.ClaimCanTransition(c.Status, domain.ClaimVerified) {
		return domain.Claim{}, domain.ErrClaimInvalidTransition
	}
	if err := s.businesses.SetBusinessOwner(ctx, c.BusinessID, c.UserID); err != nil {
		return domain.Claim{}, err
	}
	c.Status = domain.ClaimVerified
	c.OTPHash = nil
	c.OTPExpiresAt = nil
	if err := s.claims.UpdateClaim(ctx, c); err != nil {
		return domain.Claim{}, err
	}
	s.notifyVerdict(ctx, c, domain.NotifClaimVerified, "Your business claim was approved.")
	return c, nil
}

func (s *ClaimService) Reject(ctx context.Context, claimID string) (domain.Claim, error) {
	c, err := s.claims.GetClaim(ctx, claimID)
	if err != nil {
		return domain.Claim{}, err
	}
	if !domain.ClaimCanTransition(c.Status, domain.ClaimRejected) {
		return domain.Claim{}, domain.ErrClaimInvalidTransition
	}
	c.Status = domain.ClaimRejected
	c.OTPHash = nil
	c.OTPExpiresAt = nil
	if err := s.claims.UpdateClaim(ctx, c); err != nil {
		return domain.Claim{}, err
	}
	s.notifyVerdict(ctx, c, domain.NotifClaimRejected, "Your business claim was rejected.")
	return c, nil
}

// notifyVerdict records a notification and sends a best-effort email.
func (s *ClaimService) notifyVerdict(ctx context.Context, c domain.Claim, kind, body string) {
	ref := c.ID
	if err := s.notifs.InsertNotification(ctx, domain.Notification{
		UserID: c.UserID,
		Kind:   kind,
		Body:   body,
		Ref:    &ref,
	}); err != nil {
		log.Warn().Err(err).Str("claim", c.ID).Msg("claim notification failed")
	}
	if s.email != nil && c.Email != nil {
		if err := s.email.SendEmail(ctx, *c.Email, "Claim update", body); err != nil {
			log.Warn().Err(err).Str("claim", c.ID).Msg("claim email failed")
		}
	}
}

// otpCode returns 6 crypto-random decimal digits, uniform over 000000-999999.
func otpCode() (string, error) {
	n, err := crand.Int(crand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
