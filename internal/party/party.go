// Package party holds the calculator's request/response types and the input
// normalization applied before a party is sent to the damage engine.
package party

// CommonOptions are the party-wide settings shared by every member.
type CommonOptions struct {
	Enemy            string  `json:"enemy"`
	DurationSec      float64 `json:"durationSec"`
	TickSec          float64 `json:"tickSec,omitempty"`
	Trials           int     `json:"trials"`
	Seed             int     `json:"seed"`
	Multiplier       float64 `json:"multiplier"`
	AllRelicLv       int     `json:"allRelicLv"`
	RelicLvLegacy    int     `json:"relicLv,omitempty"`
	MythEnhanceLv    int     `json:"mythEnhanceLv"`
	AtkBuffPct       float64 `json:"atkBuffPct"`
	SpeedBuffPct     float64 `json:"speedBuffPct"`
	ManaRegenBuffPct int     `json:"manaRegenBuffPct"`
	DefDown          float64 `json:"defDown"`
	Coins            int     `json:"coins"`
	GuildBlessing    int     `json:"guildBlessing"`
	UnitLevelSumBuff float64 `json:"unitLevelSumBuff"`

	MoneyGunLv      int `json:"moneyGunLv"`
	PowerPotionLv   int `json:"powerPotionLv"`
	FairyBowLv      int `json:"fairyBowLv"`
	GreatSwordLv    int `json:"greatSwordLv"`
	SecretBookLv    int `json:"secretBookLv"`
	BambaDollLv     int `json:"bambaDollLv"`
	BatLv           int `json:"batLv"`
	WizardHatLv     int `json:"wizardHatLv"`
	BombLv          int `json:"bombLv"`
	OldBookLv       int `json:"oldBookLv"`
	SageYogurtLv    int `json:"sageYogurtLv"`
	MagicGauntletLv int `json:"magicGauntletLv"`
}

// Member is one party slot. The extra fields only apply to specific
// characters; normalization nils out the rest so they serialize as null,
// matching what the form sends.
type Member struct {
	Character  string `json:"character"`
	CharLv     int    `json:"charLv"`
	TreasureLv int    `json:"treasureLv"`
	RuneName   string `json:"runeName"`
	RuneRarity string `json:"runeRarity"`

	MythCount         *int     `json:"mythCount,omitempty"`
	Intake            *float64 `json:"intake,omitempty"`
	UchiCells         *int     `json:"uchiCells,omitempty"`
	BatEnhance        *int     `json:"batEnhance,omitempty"`
	StarPower         *int     `json:"starPower,omitempty"`
	EmotionControl    *int     `json:"emotionControl,omitempty"`
	SparkBonusDmg     *float64 `json:"sparkBonusDmg,omitempty"`
	EnergyCount       *int     `json:"energyCount,omitempty"`
	TechEnhance       *int     `json:"techEnhance,omitempty"`
	Score             *int     `json:"score,omitempty"`
	CannibalCount     *int     `json:"cannibalCount,omitempty"`
	Training          *int     `json:"training,omitempty"`
	StrongestCreature *int     `json:"StrongestCreature,omitempty"`
	Robots            *int     `json:"robots,omitempty"`
	RokaCritCaptain   *int     `json:"roka_crit_,omitempty"`
	RokaCrit          *int     `json:"roka_crit,omitempty"`
}

// CalcRequest is the payload sent to the damage engine.
type CalcRequest struct {
	Options CommonOptions `json:"options"`
	Party   []Member      `json:"party"`
}

// MemberResult echoes a normalized member together with its computed damage.
type MemberResult struct {
	Member
	Dps   float64 `json:"dps"`
	Share float64 `json:"share"`
}

// Meta carries engine bookkeeping the UI does not render.
type Meta struct {
	Ticks  int `json:"ticks"`
	Trials int `json:"trials"`
}

// CalcResult is the engine's answer for one party.
type CalcResult struct {
	Meta     Meta              `json:"meta"`
	TotalDps float64           `json:"totalDps"`
	Members  []MemberResult    `json:"members"`
	Debug    map[string]string `json:"Debug,omitempty"`
}

// RecomputeShares rewrites each member's share as dps/total, splitting
// equally when the total is zero.
func (r *CalcResult) RecomputeShares() {
	if len(r.Members) == 0 {
		return
	}
	total := 0.0
	for _, m := range r.Members {
		total += m.Dps
	}
	r.TotalDps = total
	if total > 0 {
		for i := range r.Members {
			r.Members[i].Share = r.Members[i].Dps / total
		}
		return
	}
	eq := 1.0 / float64(len(r.Members))
	for i := range r.Members {
		r.Members[i].Share = eq
	}
}
