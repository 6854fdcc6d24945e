package urlstate

import (
	"math"
	"strconv"
	"strings"
)

// PetLevelSum is the pet-level-sum bracket picked in the form. The bracket
// list is closed: the 2-bit token field exactly covers the four ordinals.
type PetLevelSum int

const (
	PetLevelSumNone PetLevelSum = iota
	PetLevelSum200
	PetLevelSum400
	PetLevelSum600
)

var petLevelSumTokens = [...]string{"0", "200", "400", "600"}

// PetLevelSumChoices returns the bracket labels in ordinal order.
func PetLevelSumChoices() []string {
	out := make([]string, len(petLevelSumTokens))
	copy(out, petLevelSumTokens[:])
	return out
}

func (p PetLevelSum) String() string {
	if p < 0 || int(p) >= len(petLevelSumTokens) {
		return petLevelSumTokens[0]
	}
	return petLevelSumTokens[p]
}

// PetLevelSumFromLabel maps a bracket label back to its ordinal. Unknown
// labels fall back to the first bracket.
func PetLevelSumFromLabel(s string) PetLevelSum {
	for i, t := range petLevelSumTokens {
		if t == s {
			return PetLevelSum(i)
		}
	}
	return PetLevelSumNone
}

// OtherBuffs is the secondary buff group persisted under its own query
// parameter. UnitLevelSumBuff is kept as the form's decimal string
// (half-steps from "0" to "25.0").
type OtherBuffs struct {
	GuildBlessing    int
	UnitLevelSumBuff string
	PetLevelSum      PetLevelSum
}

// DefaultOtherBuffs matches the form's initial state; a group equal to it is
// never written to the URL.
func DefaultOtherBuffs() OtherBuffs {
	return OtherBuffs{GuildBlessing: 1, UnitLevelSumBuff: "0", PetLevelSum: PetLevelSumNone}
}

// EncodeOtherBuffs packs the group into a base-36 token: bits [9:8] guild
// blessing, [7:2] doubled unit-level buff, [1:0] pet bracket ordinal. The
// guild field is masked to 2 bits (out-of-range values wrap rather than
// clamp; kept as-is from the original form code).
func EncodeOtherBuffs(b OtherBuffs) string {
	guild := b.GuildBlessing & 0x3

	unit := 0.0
	if s := strings.TrimSpace(b.UnitLevelSumBuff); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			unit = f
		}
	}
	doubled := int(math.Round(unit * 2))
	if doubled < 0 {
		doubled = 0
	}
	if doubled > 50 {
		doubled = 50
	}

	pet := int(b.PetLevelSum)
	if pet < 0 || pet >= len(petLevelSumTokens) {
		pet = 0
	}

	packed := guild<<8 | doubled<<2 | pet
	return strconv.FormatInt(int64(packed), 36)
}

// DecodeOtherBuffs parses a base-36 token back into the buff group.
// Unparseable tokens yield ok=false.
func DecodeOtherBuffs(token string) (OtherBuffs, bool) {
	if token == "" {
		return OtherBuffs{}, false
	}
	n, err := strconv.ParseInt(token, 36, 64)
	if err != nil || n < 0 {
		return OtherBuffs{}, false
	}

	doubled := int(n >> 2 & 0x3F)
	var unit string
	if doubled == 0 {
		unit = "0"
	} else {
		unit = strconv.FormatFloat(float64(doubled)/2, 'f', 1, 64)
	}

	return OtherBuffs{
		GuildBlessing:    int(n >> 8 & 0x3),
		UnitLevelSumBuff: unit,
		PetLevelSum:      PetLevelSum(n & 0x3),
	}, true
}
