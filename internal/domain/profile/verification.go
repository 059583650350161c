package profile

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrAlreadyVerified  = errors.New("profile is already verified")
	ErrNoPendingAttempt = errors.New("no verification attempt in progress")
)

// IconMismatchError reports the icon observed on the account against the one
// the challenge requires.
type IconMismatchError struct {
	Observed int
	Required int
}

func (e *IconMismatchError) Error() string {
	return fmt.Sprintf("profile icon mismatch: observed=%d required=%d", e.Observed, e.Required)
}

type VerificationStage string

const (
	StageUnverified  VerificationStage = "unverified"
	StagePendingIcon VerificationStage = "pending_icon_challenge"
	StageVerified    VerificationStage = "verified"
)

// Verification is the account ownership state of a profile. Transitions are
// pure and return a new value; the receiver is never modified.
type Verification struct {
	Stage          VerificationStage `json:"stage"`
	PendingRiotID  string            `json:"pending_riot_id,omitempty"`
	RequiredIconID int               `json:"required_icon_id,omitempty"`
	StartedAt      *time.Time        `json:"started_at,omitempty"`
	VerifiedAt     *time.Time        `json:"verified_at,omitempty"`
}

func (v Verification) normalized() Verification {
	if v.Stage == "" {
		v.Stage = StageUnverified
	}
	return v
}

func (v Verification) CurrentStage() VerificationStage {
	return v.normalized().Stage
}

func (v Verification) IsVerified() bool {
	return v.CurrentStage() == StageVerified
}

// Pending returns the claimed id and required icon of the in-flight attempt.
func (v Verification) Pending() (RiotID, int, bool) {
	if v.CurrentStage() != StagePendingIcon {
		return RiotID{}, 0, false
	}
	id, err := ParseRiotID(v.PendingRiotID)
	if err != nil || v.RequiredIconID == 0 {
		return RiotID{}, 0, false
	}
	return id, v.RequiredIconID, true
}

// Begin opens a challenge. A pending attempt is replaced.
func (v Verification) Begin(claimed RiotID, requiredIcon int, now time.Time) (Verification, error) {
	if v.IsVerified() {
		return v, ErrAlreadyVerified
	}
	if requiredIcon <= 0 {
		return v, fmt.Errorf("required icon must be > 0")
	}
	started := now.UTC()
	return Verification{
		Stage:          StagePendingIcon,
		PendingRiotID:  claimed.String(),
		RequiredIconID: requiredIcon,
		StartedAt:      &started,
	}, nil
}

// Cancel drops any pending attempt. Verified profiles are unchanged.
func (v Verification) Cancel() Verification {
	if v.IsVerified() {
		return v
	}
	return Verification{Stage: StageUnverified}
}

// CheckIcon compares the observed icon against the pending challenge.
func (v Verification) CheckIcon(observed int) error {
	_, required, ok := v.Pending()
	if !ok {
		if v.IsVerified() {
			return ErrAlreadyVerified
		}
		return ErrNoPendingAttempt
	}
	if observed != required {
		return &IconMismatchError{Observed: observed, Required: required}
	}
	return nil
}

func (v Verification) Complete(observedIcon int, now time.Time) (Verification, error) {
	if err := v.CheckIcon(observedIcon); err != nil {
		return v, err
	}
	verified := now.UTC()
	return Verification{Stage: StageVerified, VerifiedAt: &verified}, nil
}
