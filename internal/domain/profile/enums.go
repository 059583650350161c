package profile

import "strings"

type Position string

const (
	PositionTop     Position = "TOP"
	PositionJungle  Position = "JUNGLE"
	PositionMid     Position = "MID"
	PositionADC     Position = "ADC"
	PositionSupport Position = "SUP"
)

var AllPositions = []Position{PositionTop, PositionJungle, PositionMid, PositionADC, PositionSupport}

// Label returns the Korean display name; empty for unknown values.
func (p Position) Label() string {
	switch p {
	case PositionTop:
		return "탑"
	case PositionJungle:
		return "정글"
	case PositionMid:
		return "미드"
	case PositionADC:
		return "원딜"
	case PositionSupport:
		return "서포터"
	}
	return ""
}

func (p Position) Valid() bool {
	return p.Label() != ""
}

func ParsePosition(raw string) (Position, bool) {
	p := Position(strings.ToUpper(strings.TrimSpace(raw)))
	return p, p.Valid()
}

type Tier string

const (
	TierIron        Tier = "IRON"
	TierBronze      Tier = "BRONZE"
	TierSilver      Tier = "SILVER"
	TierGold        Tier = "GOLD"
	TierPlatinum    Tier = "PLATINUM"
	TierEmerald     Tier = "EMERALD"
	TierDiamond     Tier = "DIAMOND"
	TierMaster      Tier = "MASTER"
	TierGrandmaster Tier = "GRANDMASTER"
	TierChallenger  Tier = "CHALLENGER"
)

// AllTiers is ordered from lowest to highest.
var AllTiers = []Tier{
	TierIron, TierBronze, TierSilver, TierGold, TierPlatinum,
	TierEmerald, TierDiamond, TierMaster, TierGrandmaster, TierChallenger,
}

func (t Tier) Label() string {
	switch t {
	case TierIron:
		return "아이언"
	case TierBronze:
		return "브론즈"
	case TierSilver:
		return "실버"
	case TierGold:
		return "골드"
	case TierPlatinum:
		return "플래티넘"
	case TierEmerald:
		return "에메랄드"
	case TierDiamond:
		return "다이아몬드"
	case TierMaster:
		return "마스터"
	case TierGrandmaster:
		return "그랜드마스터"
	case TierChallenger:
		return "챌린저"
	}
	return ""
}

// Rank is the 0-based position in AllTiers, or -1.
func (t Tier) Rank() int {
	switch t {
	case TierIron:
		return 0
	case TierBronze:
		return 1
	case TierSilver:
		return 2
	case TierGold:
		return 3
	case TierPlatinum:
		return 4
	case TierEmerald:
		return 5
	case TierDiamond:
		return 6
	case TierMaster:
		return 7
	case TierGrandmaster:
		return 8
	case TierChallenger:
		return 9
	}
	return -1
}

func (t Tier) Valid() bool {
	return t.Rank() >= 0
}

// HasDivisions is false for apex tiers, which Riot reports as division I.
func (t Tier) HasDivisions() bool {
	return t.Valid() && t.Rank() < TierMaster.Rank()
}

func ParseTier(raw string) (Tier, bool) {
	t := Tier(strings.ToUpper(strings.TrimSpace(raw)))
	return t, t.Valid()
}

type Division string

const (
	DivisionI   Division = "I"
	DivisionII  Division = "II"
	DivisionIII Division = "III"
	DivisionIV  Division = "IV"
)

var AllDivisions = []Division{DivisionIV, DivisionIII, DivisionII, DivisionI}

// Step is 1 for IV up to 4 for I, 0 when unknown.
func (d Division) Step() int {
	switch d {
	case DivisionIV:
		return 1
	case DivisionIII:
		return 2
	case DivisionII:
		return 3
	case DivisionI:
		return 4
	}
	return 0
}

func (d Division) Valid() bool {
	return d.Step() > 0
}
