package archive

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ushigai/LuckyDefense-tools/internal/urlstate"
)

// Share is one decoded configurator link found in a message.
type Share struct {
	// Key identifies the decoded state, not the URL spelling. Two links with
	// different hosts or extra params but the same tokens share a key.
	Key        string
	URL        string
	RelicToken string
	OtherToken string
	Relics     urlstate.RelicLevels
	Buffs      urlstate.OtherBuffs
	Applied    urlstate.Applied
}

// Extractor finds configurator share links for a single host.
type Extractor struct {
	re *regexp.Regexp
}

func NewExtractor(host string) *Extractor {
	// Query strings never carry whitespace or Discord markdown delimiters.
	pattern := `https?://` + regexp.QuoteMeta(host) + `[^\s<>"'\)\]]*`
	return &Extractor{re: regexp.MustCompile(pattern)}
}

// ExtractShares returns the decodable share links in content, deduplicated by
// key, in encounter order. Links where neither token group decodes are
// dropped: a bare link to the configurator carries no state worth archiving.
func (e *Extractor) ExtractShares(content string) []Share {
	matches := e.re.FindAllString(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	out := make([]Share, 0, len(matches))
	for _, raw := range matches {
		raw = strings.TrimRight(raw, ".,;")
		relics, buffs, applied, err := urlstate.ParseShareURL(raw)
		if err != nil {
			continue
		}
		if !applied.Relics && !applied.Other {
			continue
		}

		sh := Share{
			URL:        raw,
			RelicToken: urlstate.EncodeRelicLevels(relics),
			OtherToken: urlstate.EncodeOtherBuffs(buffs),
			Relics:     relics,
			Buffs:      buffs,
			Applied:    applied,
		}
		sh.Key = ShareKey(sh.RelicToken, sh.OtherToken)
		if _, ok := seen[sh.Key]; ok {
			continue
		}
		seen[sh.Key] = struct{}{}
		out = append(out, sh)
	}
	return out
}

// RelicTotal sums the twelve slot levels; the workbook sorts on it.
func (s Share) RelicTotal() int {
	total := 0
	for _, lv := range s.Relics {
		total += lv
	}
	return total
}

// ShareKey builds the canonical dedupe key for a token pair.
func ShareKey(relicToken, otherToken string) string {
	return fmt.Sprintf("r=%s|o=%s", relicToken, otherToken)
}
