// Package urlstate packs the calculator's relic levels and secondary buffs
// into short URL-safe tokens and back, and owns the two query parameters
// (`r`, `o`) they live under. Tokens are opaque: a group is re-encoded whole
// on any change, and malformed tokens decode to "no value" instead of
// failing, so stale or hand-edited URLs degrade to defaults.
package urlstate

import "net/url"

const (
	// RelicParam is the query parameter carrying the relic-level token.
	RelicParam = "r"
	// OtherParam is the query parameter carrying the other-buffs token.
	OtherParam = "o"
)

// Location is the single mutable address-bar style resource. All mutation
// funnels through Persist; Replace overwrites the current entry rather than
// appending history.
type Location interface {
	Read() url.URL
	Replace(u url.URL)
}

// MemoryLocation is a Location backed by an in-process URL.
type MemoryLocation struct {
	URL      url.URL
	Replaced int
}

func (l *MemoryLocation) Read() url.URL { return l.URL }

func (l *MemoryLocation) Replace(u url.URL) {
	l.URL = u
	l.Replaced++
}

// Applied reports, per group, whether a token was present and decoded.
// Callers use it to pick a fallback initialization rule (for example,
// mirroring the summary level control when no relic token applied).
type Applied struct {
	Relics bool
	Other  bool
}

// Apply decodes both groups from query values. Failures are independent: a
// bad relic token does not block a valid buffs token. Groups that did not
// apply come back at their defaults.
func Apply(q url.Values) (RelicLevels, OtherBuffs, Applied) {
	relics := DefaultRelicLevels()
	buffs := DefaultOtherBuffs()
	var ap Applied

	if v, ok := DecodeRelicLevels(q.Get(RelicParam)); ok {
		relics = v
		ap.Relics = true
	}
	if v, ok := DecodeOtherBuffs(q.Get(OtherParam)); ok {
		buffs = v
		ap.Other = true
	}
	return relics, buffs, ap
}

// Persist re-encodes both groups into the location's query string, dropping
// default-valued groups entirely and preserving unrelated parameters. The
// location is replaced only when the resulting URL differs from the current
// one; the return value reports whether a replace happened.
func Persist(loc Location, relics RelicLevels, buffs OtherBuffs) bool {
	cur := loc.Read()
	next := Encoded(cur, relics, buffs)
	if next.String() == cur.String() {
		return false
	}
	loc.Replace(next)
	return true
}

// Encoded returns a copy of u with the state parameters rewritten for the
// given groups.
func Encoded(u url.URL, relics RelicLevels, buffs OtherBuffs) url.URL {
	q := u.Query()

	relics = relics.Clamped()
	if relics == DefaultRelicLevels() {
		q.Del(RelicParam)
	} else {
		q.Set(RelicParam, EncodeRelicLevels(relics))
	}

	if EncodeOtherBuffs(buffs) == EncodeOtherBuffs(DefaultOtherBuffs()) {
		q.Del(OtherParam)
	} else {
		q.Set(OtherParam, EncodeOtherBuffs(buffs))
	}

	u.RawQuery = q.Encode()
	return u
}

// ParseShareURL decodes the state groups out of a full share URL string.
func ParseShareURL(raw string) (RelicLevels, OtherBuffs, Applied, error) {
	u, err := url.Parse(raw)
	if err != nil {
		relics, buffs, ap := Apply(url.Values{})
		return relics, buffs, ap, err
	}
	relics, buffs, ap := Apply(u.Query())
	return relics, buffs, ap, nil
}
