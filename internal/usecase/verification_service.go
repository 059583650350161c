package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/riskibarqy/arena-scrim/internal/domain/profile"
	"github.com/riskibarqy/arena-scrim/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultVerificationIcons are starter icons every account owns.
var DefaultVerificationIcons = []int{29, 28, 27, 26, 25, 23, 22, 21, 20, 19}

const DefaultVerificationMinLevel = 30

type VerificationConfig struct {
	MinLevel int
	Icons    []int
}

func (c VerificationConfig) normalized() VerificationConfig {
	if c.MinLevel <= 0 {
		c.MinLevel = DefaultVerificationMinLevel
	}
	if len(c.Icons) == 0 {
		c.Icons = DefaultVerificationIcons
	}
	return c
}

type InitiateVerificationResult struct {
	RequiredIconID int
	GameName       string
	TagLine        string
}

// VerificationService runs the two-phase icon challenge proving that a user
// controls a Riot account.
type VerificationService struct {
	profileRepo profile.Repository
	provider    AccountProvider
	cfg         VerificationConfig
	logger      *logging.Logger
	now         func() time.Time
	pickIcon    func(icons []int) int
}

func NewVerificationService(
	profileRepo profile.Repository,
	provider AccountProvider,
	cfg VerificationConfig,
	logger *logging.Logger,
) *VerificationService {
	if logger == nil {
		logger = logging.Default()
	}

	return &VerificationService{
		profileRepo: profileRepo,
		provider:    provider,
		cfg:         cfg.normalized(),
		logger:      logger,
		now:         time.Now,
		pickIcon: func(icons []int) int {
			return icons[rand.IntN(len(icons))]
		},
	}
}

func (s *VerificationService) GetProfile(ctx context.Context, userID string) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VerificationService.GetProfile")
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return profile.Profile{}, err
	}
	return ensureProfile(ctx, s.profileRepo, userID, s.now().UTC())
}

func (s *VerificationService) Initiate(ctx context.Context, userID, claimedRiotID string) (InitiateVerificationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VerificationService.Initiate")
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return InitiateVerificationResult{}, err
	}
	claimed, err := profile.ParseRiotID(claimedRiotID)
	if err != nil {
		return InitiateVerificationResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	current, err := ensureProfile(ctx, s.profileRepo, userID, now)
	if err != nil {
		return InitiateVerificationResult{}, err
	}
	if current.IsVerified() {
		return InitiateVerificationResult{}, fmt.Errorf("%w: %w", ErrConflict, profile.ErrAlreadyVerified)
	}

	account, err := s.provider.ResolveAccount(ctx, claimed)
	if err != nil {
		recordSpanError(span, err)
		return InitiateVerificationResult{}, fmt.Errorf("resolve riot account: %w", err)
	}
	if account.Level < s.cfg.MinLevel {
		return InitiateVerificationResult{}, &EligibilityError{
			Requirement: RequirementSummonerLevel,
			Observed:    account.Level,
			Required:    s.cfg.MinLevel,
		}
	}
	if err := s.ensureAccountUnclaimed(ctx, userID, account.PUUID); err != nil {
		return InitiateVerificationResult{}, err
	}

	icon := s.pickIcon(s.cfg.Icons)
	next, err := current.Verification.Begin(claimed, icon, now)
	if err != nil {
		return InitiateVerificationResult{}, mapProfileError(err)
	}
	if err := s.profileRepo.SaveVerification(ctx, userID, next); err != nil {
		return InitiateVerificationResult{}, fmt.Errorf("save pending verification: %w", err)
	}

	span.SetAttributes(attribute.Int("verification.required_icon", icon))
	s.logger.InfoContext(ctx, "riot verification started",
		"user_id", userID,
		"riot_id", claimed.String(),
		"required_icon", icon,
	)

	return InitiateVerificationResult{
		RequiredIconID: icon,
		GameName:       account.GameName,
		TagLine:        account.TagLine,
	}, nil
}

// Confirm completes a pending challenge once the account shows the required
// icon. Any failure leaves the pending attempt in place.
func (s *VerificationService) Confirm(ctx context.Context, userID string) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VerificationService.Confirm")
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return profile.Profile{}, err
	}

	current, exists, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: %w", ErrInvalidState, profile.ErrNoPendingAttempt)
	}
	claimed, _, ok := current.Verification.Pending()
	if !ok {
		return profile.Profile{}, fmt.Errorf("%w: %w", ErrInvalidState, profile.ErrNoPendingAttempt)
	}

	account, err := s.provider.ResolveAccount(ctx, claimed)
	if err != nil {
		recordSpanError(span, err)
		return profile.Profile{}, fmt.Errorf("resolve riot account: %w", err)
	}
	if err := current.Verification.CheckIcon(account.ProfileIconID); err != nil {
		return profile.Profile{}, mapProfileError(err)
	}

	ranked, err := s.provider.GetRankedStanding(ctx, account.PUUID)
	if err != nil {
		recordSpanError(span, err)
		return profile.Profile{}, fmt.Errorf("get ranked standing: %w", err)
	}
	if err := s.ensureAccountUnclaimed(ctx, userID, account.PUUID); err != nil {
		return profile.Profile{}, err
	}

	now := s.now().UTC()
	next, err := current.Verification.Complete(account.ProfileIconID, now)
	if err != nil {
		return profile.Profile{}, mapProfileError(err)
	}
	linked := profile.RiotAccount{
		PUUID:    account.PUUID,
		GameName: account.GameName,
		TagLine:  account.TagLine,
		Region:   profile.DefaultRiotRegion,
		Level:    account.Level,
		Ranked:   ranked,
	}
	if err := s.profileRepo.CompleteVerification(ctx, userID, linked, next); err != nil {
		if errors.Is(err, profile.ErrPUUIDTaken) {
			return profile.Profile{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return profile.Profile{}, fmt.Errorf("complete verification: %w", err)
	}

	s.logger.InfoContext(ctx, "riot verification completed",
		"user_id", userID,
		"puuid", account.PUUID,
		"ranked", ranked != nil,
	)

	current.Account = &linked
	current.Verification = next
	current.UpdatedAt = now
	return current, nil
}

// Cancel drops any pending attempt. It is a no-op for unknown or verified
// profiles.
func (s *VerificationService) Cancel(ctx context.Context, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.VerificationService.Cancel")
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return err
	}

	current, exists, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	if !exists || current.IsVerified() {
		return nil
	}
	if err := s.profileRepo.SaveVerification(ctx, userID, current.Verification.Cancel()); err != nil {
		return fmt.Errorf("clear pending verification: %w", err)
	}
	return nil
}

// Refresh re-reads level and solo-queue standing for a verified profile.
func (s *VerificationService) Refresh(ctx context.Context, userID string) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VerificationService.Refresh")
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return profile.Profile{}, err
	}

	current, exists, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists || !current.IsVerified() {
		return profile.Profile{}, fmt.Errorf("%w: no linked riot account", ErrInvalidState)
	}

	account, err := s.provider.ResolveAccount(ctx, current.Account.RiotID())
	if err != nil {
		recordSpanError(span, err)
		return profile.Profile{}, fmt.Errorf("resolve riot account: %w", err)
	}
	ranked, err := s.provider.GetRankedStanding(ctx, current.Account.PUUID)
	if err != nil {
		recordSpanError(span, err)
		return profile.Profile{}, fmt.Errorf("get ranked standing: %w", err)
	}
	if err := s.profileRepo.UpdateRanked(ctx, userID, account.Level, ranked); err != nil {
		return profile.Profile{}, fmt.Errorf("update ranked standing: %w", err)
	}

	refreshed := *current.Account
	refreshed.Level = account.Level
	refreshed.Ranked = ranked
	current.Account = &refreshed
	current.UpdatedAt = s.now().UTC()
	return current, nil
}

func (s *VerificationService) ensureAccountUnclaimed(ctx context.Context, userID, puuid string) error {
	owner, exists, err := s.profileRepo.GetByPUUID(ctx, puuid)
	if err != nil {
		return fmt.Errorf("check riot account owner: %w", err)
	}
	if exists && owner.UserID != userID {
		return fmt.Errorf("%w: %w", ErrConflict, profile.ErrPUUIDTaken)
	}
	return nil
}

func mapProfileError(err error) error {
	var mismatch *profile.IconMismatchError
	switch {
	case errors.As(err, &mismatch):
		return &IconMismatchError{Observed: mismatch.Observed, Required: mismatch.Required}
	case errors.Is(err, profile.ErrAlreadyVerified):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, profile.ErrNoPendingAttempt):
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	case errors.Is(err, profile.ErrInvalidRiotID):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
