package party

import "fmt"

// Enemy bosses the engine knows about; anything else falls back to normal.
const (
	EnemyNormal = "ノーマル80Wボス"
	EnemyHard   = "ハード80Wボス"
	EnemyHell   = "地獄80Wボス"
	EnemyGod    = "神80Wボス"
)

var allowedEnemies = map[string]struct{}{
	EnemyNormal: {},
	EnemyHard:   {},
	EnemyHell:   {},
	EnemyGod:    {},
}

const NoneRune = "なし"

var allowedTrials = map[int]struct{}{1: {}, 3: {}, 10: {}, 30: {}, 100: {}}

// ClampInt bounds v to [lo,hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat bounds v to [lo,hi].
func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampIntDefault(v, lo, hi, def int) int {
	if v == 0 {
		v = def
	}
	return ClampInt(v, lo, hi)
}

// NormalizeOptions applies the engine's input bounds to the common options:
// enemy allow-list, trial steps, mana-regen steps, and relic levels defaulting
// to the all-relic summary level.
func NormalizeOptions(o CommonOptions) CommonOptions {
	if _, ok := allowedEnemies[o.Enemy]; !ok {
		o.Enemy = EnemyNormal
	}

	if o.DurationSec == 0 {
		o.DurationSec = 60
	}
	o.DurationSec = ClampFloat(o.DurationSec, 1, 24*3600)
	o.TickSec = 1.0

	if o.AllRelicLv == 0 {
		// Older share payloads used relicLv.
		o.AllRelicLv = o.RelicLvLegacy
	}
	o.AllRelicLv = clampIntDefault(o.AllRelicLv, 1, 11, 1)
	o.RelicLvLegacy = 0

	o.MythEnhanceLv = clampIntDefault(o.MythEnhanceLv, 1, 35, 1)

	if o.Trials == 0 {
		o.Trials = 3
	}
	o.Trials = ClampInt(o.Trials, 1, 100)
	if _, ok := allowedTrials[o.Trials]; !ok {
		o.Trials = 3
	}

	if o.Seed == 0 {
		o.Seed = 1
	}
	o.Seed = ClampInt(o.Seed, -2147483648, 2147483647)

	o.AtkBuffPct = ClampFloat(o.AtkBuffPct, -1000, 10000)
	o.SpeedBuffPct = ClampFloat(o.SpeedBuffPct, -1000, 10000)
	if o.Multiplier == 0 {
		o.Multiplier = 1
	}

	o.ManaRegenBuffPct = ClampInt(o.ManaRegenBuffPct, 0, 700)
	if o.ManaRegenBuffPct%100 != 0 {
		o.ManaRegenBuffPct = 0
	}

	if o.DefDown == 0 {
		o.DefDown = 190
	}
	o.DefDown = ClampFloat(o.DefDown, -10000000, 10000000)

	if o.Coins == 0 {
		o.Coins = 300000
	}
	o.Coins = ClampInt(o.Coins, 0, 2000000000)

	o.GuildBlessing = ClampInt(o.GuildBlessing, 0, 2)
	o.UnitLevelSumBuff = ClampFloat(o.UnitLevelSumBuff, 0, 25)

	relicLv := func(v int) int { return clampIntDefault(v, 1, 11, o.AllRelicLv) }
	o.MoneyGunLv = relicLv(o.MoneyGunLv)
	o.PowerPotionLv = relicLv(o.PowerPotionLv)
	o.FairyBowLv = relicLv(o.FairyBowLv)
	o.GreatSwordLv = relicLv(o.GreatSwordLv)
	o.SecretBookLv = relicLv(o.SecretBookLv)
	o.BambaDollLv = relicLv(o.BambaDollLv)
	o.BatLv = relicLv(o.BatLv)
	o.WizardHatLv = relicLv(o.WizardHatLv)
	o.BombLv = relicLv(o.BombLv)
	o.OldBookLv = relicLv(o.OldBookLv)
	o.SageYogurtLv = relicLv(o.SageYogurtLv)
	o.MagicGauntletLv = relicLv(o.MagicGauntletLv)

	return o
}

// RelicLevelSlice returns the twelve relic levels in slot order.
func (o CommonOptions) RelicLevelSlice() [12]int {
	return [12]int{
		o.MoneyGunLv, o.PowerPotionLv, o.FairyBowLv, o.GreatSwordLv,
		o.SecretBookLv, o.BambaDollLv, o.BatLv, o.WizardHatLv,
		o.BombLv, o.OldBookLv, o.SageYogurtLv, o.MagicGauntletLv,
	}
}

// SetRelicLevels writes twelve slot-ordered levels into the named fields.
func (o *CommonOptions) SetRelicLevels(lv [12]int) {
	o.MoneyGunLv = lv[0]
	o.PowerPotionLv = lv[1]
	o.FairyBowLv = lv[2]
	o.GreatSwordLv = lv[3]
	o.SecretBookLv = lv[4]
	o.BambaDollLv = lv[5]
	o.BatLv = lv[6]
	o.WizardHatLv = lv[7]
	o.BombLv = lv[8]
	o.OldBookLv = lv[9]
	o.SageYogurtLv = lv[10]
	o.MagicGauntletLv = lv[11]
}

func iptr(v int) *int { return &v }
func fptr(v float64) *float64 { return &v }

// NormalizeMember validates a party slot against the character set and clamps
// the per-character extras. Extras that do not apply to the character are
// dropped.
func NormalizeMember(m Member, knownCharacter func(id string) bool) (Member, error) {
	if m.Character == "" || !knownCharacter(m.Character) {
		return Member{}, fmt.Errorf("unknown character: %s", m.Character)
	}

	m.CharLv = clampIntDefault(m.CharLv, 1, 15, 1)
	m.TreasureLv = clampIntDefault(m.TreasureLv, 1, 15, 1)

	if m.RuneName == "" {
		m.RuneName = NoneRune
	}
	if m.RuneRarity == "" {
		m.RuneRarity = NoneRune
	}

	out := Member{
		Character:  m.Character,
		CharLv:     m.CharLv,
		TreasureLv: m.TreasureLv,
		RuneName:   m.RuneName,
		RuneRarity: m.RuneRarity,
	}

	clampOptInt := func(p *int, lo, hi, def int) *int {
		if p == nil {
			return iptr(def)
		}
		return iptr(ClampInt(*p, lo, hi))
	}

	switch m.Character {
	case "15021": // awakened Hayley: count of distinct mythics
		out.MythCount = clampOptInt(m.MythCount, 0, 30, 0)
	case "5005": // Blob: intake
		v := 0.0
		if m.Intake != nil {
			v = ClampFloat(*m.Intake, 0, 1000000)
		}
		out.Intake = fptr(v)
	case "5016": // Uchi: occupied cells
		out.UchiCells = clampOptInt(m.UchiCells, 1, 5, 1)
	case "5010": // Batman: bat enhance tier
		out.BatEnhance = clampOptInt(m.BatEnhance, 1, 20, 1)
	case "5021": // Hayley: star power stacks
		out.StarPower = clampOptInt(m.StarPower, 0, 10, 0)
	case "5018": // Master Kun: emotion control
		out.EmotionControl = clampOptInt(m.EmotionControl, 0, 99, 0)
	case "5003": // Lancelot: spark bonus damage
		v := 0.0
		if m.SparkBonusDmg != nil {
			v = ClampFloat(*m.SparkBonusDmg, 0, 3.0)
		}
		out.SparkBonusDmg = fptr(v)
	case "5013": // Watt (ultimate): energy count
		out.EnergyCount = clampOptInt(m.EnergyCount, 1, 2000000000, 1)
	case "5204": // Iron Nyan v2: tech enhance
		out.TechEnhance = clampOptInt(m.TechEnhance, 0, 10, 0)
	case "5024", "15024": // bird keeper: score
		out.Score = clampOptInt(m.Score, 0, 100, 0)
	case "5014", "5114", "5214": // Tar: cannibal count
		out.CannibalCount = clampOptInt(m.CannibalCount, 0, 2000000000, 0)
	case "5001": // Bamba: training
		out.Training = clampOptInt(m.Training, 0, 30, 0)
	case "5106": // Dragon: strongest creature stacks
		out.StrongestCreature = clampOptInt(m.StrongestCreature, 1, 1000, 1)
	case "14002": // Doctor Pulse: drone count
		out.Robots = clampOptInt(m.Robots, 1, 4, 1)
	case "15023": // Captain Roka: precision shot
		out.RokaCritCaptain = clampOptInt(m.RokaCritCaptain, 1, 30, 1)
	case "5023": // Roka: precision shot
		out.RokaCrit = clampOptInt(m.RokaCrit, 1, 30, 1)
	}

	return out, nil
}
