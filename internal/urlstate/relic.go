package urlstate

import (
	"encoding/base64"
	"math"
	"strconv"
)

// NumRelicSlots is the number of relic slots the calculator tracks. The slot
// order below is fixed: it matches the form layout and is significant for the
// packed token format.
const NumRelicSlots = 12

// RelicSlots lists the slot keys, most significant packed field first.
var RelicSlots = [NumRelicSlots]string{
	"moneyGunLv",
	"powerPotionLv",
	"fairyBowLv",
	"greatSwordLv",
	"secretBookLv",
	"bambaDollLv",
	"batLv",
	"wizardHatLv",
	"bombLv",
	"oldBookLv",
	"sageYogurtLv",
	"magicGauntletLv",
}

const (
	MinRelicLevel = 1
	MaxRelicLevel = 11
)

// RelicLevels holds one level per slot, in RelicSlots order.
type RelicLevels [NumRelicSlots]int

// DefaultRelicLevels returns all slots at level 1.
func DefaultRelicLevels() RelicLevels {
	var r RelicLevels
	for i := range r {
		r[i] = MinRelicLevel
	}
	return r
}

// ClampRelicLevel normalizes a raw numeric level the way the form does:
// non-finite values become 1, fractional values are truncated toward zero,
// and the result is clamped to [1,11].
func ClampRelicLevel(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return MinRelicLevel
	}
	n := int(math.Trunc(v))
	if n < MinRelicLevel {
		return MinRelicLevel
	}
	if n > MaxRelicLevel {
		return MaxRelicLevel
	}
	return n
}

// Clamped returns a copy with every level clamped to [1,11].
func (r RelicLevels) Clamped() RelicLevels {
	for i, lv := range r {
		if lv < MinRelicLevel {
			r[i] = MinRelicLevel
		} else if lv > MaxRelicLevel {
			r[i] = MaxRelicLevel
		}
	}
	return r
}

// Uniform reports whether every slot has the same level.
func (r RelicLevels) Uniform() (int, bool) {
	for _, lv := range r[1:] {
		if lv != r[0] {
			return 0, false
		}
	}
	return r[0], true
}

// EncodeRelicLevels packs the 12 levels into a URL-safe token. A uniform set
// encodes as a single base-36 digit; anything else packs (lv-1) as 12 4-bit
// fields of a 48-bit big-endian integer, split into 6 bytes and base64url
// encoded without padding.
func EncodeRelicLevels(r RelicLevels) string {
	r = r.Clamped()
	if lv, ok := r.Uniform(); ok {
		return strconv.FormatInt(int64(lv), 36)
	}

	var packed uint64
	for _, lv := range r {
		packed = packed<<4 | uint64(lv-MinRelicLevel)&0xF
	}

	var buf [6]byte
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = byte(packed)
		packed >>= 8
	}
	return base64.RawURLEncoding.EncodeToString(buf[:])
}

// DecodeRelicLevels reconstructs a level set from a token. A one-character
// token is read as a base-36 level applied to every slot; any other token
// must base64url-decode to exactly 6 bytes. Malformed tokens yield ok=false,
// never an error: callers leave existing state untouched.
func DecodeRelicLevels(token string) (RelicLevels, bool) {
	var out RelicLevels
	if token == "" {
		return out, false
	}

	if len(token) == 1 {
		n, err := strconv.ParseInt(token, 36, 64)
		if err != nil || n < MinRelicLevel || n > MaxRelicLevel {
			return out, false
		}
		for i := range out {
			out[i] = int(n)
		}
		return out, true
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw) != 6 {
		return out, false
	}

	var packed uint64
	for _, b := range raw {
		packed = packed<<8 | uint64(b)
	}
	for i := range out {
		shift := uint(4 * (NumRelicSlots - 1 - i))
		lv := int(packed>>shift&0xF) + MinRelicLevel
		if lv > MaxRelicLevel {
			lv = MaxRelicLevel
		}
		out[i] = lv
	}
	return out, true
}
