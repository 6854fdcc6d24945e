package archive

import (
	"testing"

	"github.com/ushigai/LuckyDefense-tools/internal/urlstate"
)

func TestExtractShares(t *testing.T) {
	relics := urlstate.RelicLevels{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 1, 2}
	buffs := urlstate.OtherBuffs{GuildBlessing: 2, UnitLevelSumBuff: "3.5", PetLevelSum: urlstate.PetLevelSum400}
	r := urlstate.EncodeRelicLevels(relics)
	o := urlstate.EncodeOtherBuffs(buffs)

	ex := NewExtractor("calc.example")
	content := "my build: https://calc.example/?r=" + r + "&o=" + o + " try it.\n" +
		"same thing again https://calc.example/?r=" + r + "&o=" + o + "&lang=ja"

	shares := ex.ExtractShares(content)
	if len(shares) != 1 {
		t.Fatalf("want 1 deduplicated share, got %d", len(shares))
	}
	sh := shares[0]
	if sh.Relics != relics {
		t.Fatalf("relics mismatch: got %v", sh.Relics)
	}
	if sh.Buffs != buffs {
		t.Fatalf("buffs mismatch: got %+v", sh.Buffs)
	}
	if sh.Key != ShareKey(r, o) {
		t.Fatalf("key mismatch: got %q", sh.Key)
	}
}

func TestExtractSharesPartialGroups(t *testing.T) {
	ex := NewExtractor("calc.example")

	// Only the relic group present.
	shares := ex.ExtractShares("see https://calc.example/?r=5")
	if len(shares) != 1 {
		t.Fatalf("want 1 share, got %d", len(shares))
	}
	if !shares[0].Applied.Relics || shares[0].Applied.Other {
		t.Fatalf("want relics-only, got %+v", shares[0].Applied)
	}
	if shares[0].Relics != (urlstate.RelicLevels{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5}) {
		t.Fatalf("shorthand not decoded: %v", shares[0].Relics)
	}

	// Buffs fall back to defaults when the o group is absent.
	if shares[0].Buffs != urlstate.DefaultOtherBuffs() {
		t.Fatalf("want default buffs, got %+v", shares[0].Buffs)
	}
}

func TestExtractSharesSkipsUselessLinks(t *testing.T) {
	ex := NewExtractor("calc.example")

	cases := []string{
		"no links here",
		"bare link https://calc.example/ without state",
		"other host https://other.example/?r=5",
		"broken token https://calc.example/?r=!!",
	}
	for _, content := range cases {
		if got := ex.ExtractShares(content); len(got) != 0 {
			t.Fatalf("content %q: want no shares, got %+v", content, got)
		}
	}
}

func TestExtractSharesTrimsTrailingPunctuation(t *testing.T) {
	ex := NewExtractor("calc.example")
	shares := ex.ExtractShares("link: https://calc.example/?r=5, nice one")
	if len(shares) != 1 {
		t.Fatalf("want 1 share, got %d", len(shares))
	}
	if !shares[0].Applied.Relics {
		t.Fatalf("relics not applied: %+v", shares[0])
	}
}
