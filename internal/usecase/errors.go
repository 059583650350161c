package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidState          = errors.New("invalid state")
	ErrEligibility           = errors.New("eligibility requirement not met")
	ErrConflict              = errors.New("conflict")
	ErrRateLimited           = errors.New("rate limited")
	ErrProviderMisconfigured = errors.New("provider misconfigured")
	ErrProviderFailure       = errors.New("provider failure")
	ErrIconMismatch          = errors.New("icon mismatch")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

type Requirement string

const (
	RequirementSummonerLevel  Requirement = "summoner_level"
	RequirementRosterSize     Requirement = "roster_size"
	RequirementRosterVerified Requirement = "roster_verified"
)

// EligibilityError carries the observed value that failed a numeric gate.
type EligibilityError struct {
	Requirement Requirement
	Observed    int
	Required    int
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("%s: %s observed=%d required=%d", ErrEligibility, e.Requirement, e.Observed, e.Required)
}

func (e *EligibilityError) Unwrap() error {
	return ErrEligibility
}

// IconMismatchError is returned by verification confirm when the account
// still shows another icon.
type IconMismatchError struct {
	Observed int
	Required int
}

func (e *IconMismatchError) Error() string {
	return fmt.Sprintf("%s: observed=%d required=%d", ErrIconMismatch, e.Observed, e.Required)
}

func (e *IconMismatchError) Unwrap() error {
	return ErrIconMismatch
}
