package party

import "testing"

func TestNormalizeOptionsDefaults(t *testing.T) {
	o := NormalizeOptions(CommonOptions{})
	if o.Enemy != EnemyNormal {
		t.Fatalf("want default enemy %q, got %q", EnemyNormal, o.Enemy)
	}
	if o.DurationSec != 60 || o.Trials != 3 || o.Coins != 300000 || o.DefDown != 190 {
		t.Fatalf("unexpected defaults: %+v", o)
	}
	if o.AllRelicLv != 1 || o.MythEnhanceLv != 1 || o.Multiplier != 1 {
		t.Fatalf("unexpected defaults: %+v", o)
	}
	if o.MoneyGunLv != 1 || o.MagicGauntletLv != 1 {
		t.Fatalf("relic slots should default to allRelicLv, got %+v", o)
	}
}

func TestNormalizeOptionsRelicFallback(t *testing.T) {
	o := NormalizeOptions(CommonOptions{AllRelicLv: 7, BatLv: 9})
	if o.BatLv != 9 {
		t.Fatalf("explicit relic level must win, got %d", o.BatLv)
	}
	if o.MoneyGunLv != 7 || o.BombLv != 7 {
		t.Fatalf("unset relic slots must mirror allRelicLv, got %+v", o)
	}

	// Legacy key still feeds the summary level.
	o = NormalizeOptions(CommonOptions{RelicLvLegacy: 5})
	if o.AllRelicLv != 5 || o.FairyBowLv != 5 {
		t.Fatalf("legacy relicLv should apply, got %+v", o)
	}
}

func TestNormalizeOptionsSnapping(t *testing.T) {
	o := NormalizeOptions(CommonOptions{Trials: 17, ManaRegenBuffPct: 250, Enemy: "unknown boss"})
	if o.Trials != 3 {
		t.Fatalf("off-step trials should snap to 3, got %d", o.Trials)
	}
	if o.ManaRegenBuffPct != 0 {
		t.Fatalf("off-step mana regen should snap to 0, got %d", o.ManaRegenBuffPct)
	}
	if o.Enemy != EnemyNormal {
		t.Fatalf("unknown enemy should fall back, got %q", o.Enemy)
	}

	o = NormalizeOptions(CommonOptions{GuildBlessing: 9, UnitLevelSumBuff: 40})
	if o.GuildBlessing != 2 {
		t.Fatalf("guild blessing clamps to 2, got %d", o.GuildBlessing)
	}
	if o.UnitLevelSumBuff != 25 {
		t.Fatalf("unit level sum buff clamps to 25, got %v", o.UnitLevelSumBuff)
	}
}

func TestRelicLevelSliceRoundTrip(t *testing.T) {
	var o CommonOptions
	in := [12]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 1}
	o.SetRelicLevels(in)
	if got := o.RelicLevelSlice(); got != in {
		t.Fatalf("slot order mismatch:\nwant: %v\n got: %v", in, got)
	}
}

func TestNormalizeMember(t *testing.T) {
	known := func(id string) bool { return id == "5021" || id == "5023" }

	m, err := NormalizeMember(Member{Character: "5021", CharLv: 99}, known)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.CharLv != 15 {
		t.Fatalf("char level clamps to 15, got %d", m.CharLv)
	}
	if m.StarPower == nil || *m.StarPower != 0 {
		t.Fatalf("Hayley should carry starPower default 0, got %v", m.StarPower)
	}
	if m.RokaCrit != nil {
		t.Fatalf("inapplicable extras must be dropped")
	}
	if m.RuneName != NoneRune || m.RuneRarity != NoneRune {
		t.Fatalf("empty rune fields should normalize to %q", NoneRune)
	}

	m, err = NormalizeMember(Member{Character: "5023", RokaCrit: iptr(500)}, known)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.RokaCrit == nil || *m.RokaCrit != 30 {
		t.Fatalf("rokaCrit clamps to 30, got %v", m.RokaCrit)
	}

	if _, err := NormalizeMember(Member{Character: "9999"}, known); err == nil {
		t.Fatalf("unknown character must be rejected")
	}
}

func TestNormalizeMemberAbsentExtraDefaults(t *testing.T) {
	known := func(string) bool { return true }

	// Absent extras take the form's initial value, not the clamp fallback.
	cases := []struct {
		character string
		want      int
		get       func(Member) *int
	}{
		{"15021", 0, func(m Member) *int { return m.MythCount }},
		{"15023", 1, func(m Member) *int { return m.RokaCritCaptain }},
		{"5023", 1, func(m Member) *int { return m.RokaCrit }},
		{"5013", 1, func(m Member) *int { return m.EnergyCount }},
		{"5106", 1, func(m Member) *int { return m.StrongestCreature }},
	}
	for _, c := range cases {
		m, err := NormalizeMember(Member{Character: c.character}, known)
		if err != nil {
			t.Fatalf("character %s: unexpected error: %v", c.character, err)
		}
		got := c.get(m)
		if got == nil || *got != c.want {
			t.Fatalf("character %s: want absent-extra default %d, got %v", c.character, c.want, got)
		}
	}
}

func TestNormalizeOptionsSeedDefault(t *testing.T) {
	o := NormalizeOptions(CommonOptions{})
	if o.Seed != 1 {
		t.Fatalf("absent seed should default to 1, got %d", o.Seed)
	}

	o = NormalizeOptions(CommonOptions{Seed: 42})
	if o.Seed != 42 {
		t.Fatalf("explicit seed must be kept, got %d", o.Seed)
	}
}

func TestRecomputeShares(t *testing.T) {
	r := CalcResult{Members: []MemberResult{{Dps: 30}, {Dps: 10}}}
	r.RecomputeShares()
	if r.TotalDps != 40 {
		t.Fatalf("want total 40, got %v", r.TotalDps)
	}
	if r.Members[0].Share != 0.75 || r.Members[1].Share != 0.25 {
		t.Fatalf("unexpected shares: %+v", r.Members)
	}

	r = CalcResult{Members: []MemberResult{{}, {}, {}, {}}}
	r.RecomputeShares()
	for _, m := range r.Members {
		if m.Share != 0.25 {
			t.Fatalf("zero total should split equally, got %+v", r.Members)
		}
	}
}
