package team

import (
	"fmt"
	"strings"
	"time"
)

const (
	InviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	InviteCodeLength   = 8

	MaxNameLength = 40
)

// Region is the three-level area a team plays out of (province, city, district).
type Region struct {
	Depth1 string
	Depth2 string
	Depth3 string
}

func (r Region) Validate() error {
	if strings.TrimSpace(r.Depth1) == "" {
		return fmt.Errorf("region depth1 is required")
	}
	if strings.TrimSpace(r.Depth2) == "" {
		return fmt.Errorf("region depth2 is required")
	}
	return nil
}

// AreaKey identifies the area used by area rankings.
func (r Region) AreaKey() string {
	return r.Depth1 + "/" + r.Depth2
}

// Team is an amateur five-player roster led by a captain.
type Team struct {
	ID           string
	Name         string
	Region       Region
	CaptainID    string
	ContactLink  string
	InviteCode   string
	AvgTierScore *float64
	WinCount     int
	LossCount    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return fmt.Errorf("team name is required")
	}
	if len([]rune(name)) > MaxNameLength {
		return fmt.Errorf("team name must be at most %d characters", MaxNameLength)
	}
	if t.CaptainID == "" {
		return fmt.Errorf("team captain is required")
	}
	if !ValidInviteCode(t.InviteCode) {
		return fmt.Errorf("team invite code is invalid")
	}
	if t.WinCount < 0 || t.LossCount < 0 {
		return fmt.Errorf("team record counters must be non-negative")
	}
	return t.Region.Validate()
}

func (t Team) IsCaptain(userID string) bool {
	return userID != "" && t.CaptainID == userID
}

func (t Team) Played() int {
	return t.WinCount + t.LossCount
}

// WinRate is 0 for a team with no completed matches.
func (t Team) WinRate() float64 {
	played := t.Played()
	if played == 0 {
		return 0
	}
	return float64(t.WinCount) / float64(played)
}

func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func ValidInviteCode(code string) bool {
	if len(code) != InviteCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(InviteCodeAlphabet, code[i]) < 0 {
			return false
		}
	}
	return true
}

// Filter narrows team listings to an area. Empty fields match everything.
type Filter struct {
	RegionDepth1 string
	RegionDepth2 string
}

func (f Filter) Matches(t Team) bool {
	if f.RegionDepth1 != "" && t.Region.Depth1 != f.RegionDepth1 {
		return false
	}
	if f.RegionDepth2 != "" && t.Region.Depth2 != f.RegionDepth2 {
		return false
	}
	return true
}

func (f Filter) IsZero() bool {
	return f.RegionDepth1 == "" && f.RegionDepth2 == ""
}
