// Package report turns a set of share links into a side-by-side damage
// comparison: each link is decoded, run against the engine with a common
// party, and exported as one row of a workbook.
package report

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ushigai/LuckyDefense-tools/internal/party"
	"github.com/ushigai/LuckyDefense-tools/internal/urlstate"
)

type Calculator interface {
	Calc(ctx context.Context, req party.CalcRequest) (party.CalcResult, error)
}

// Row is one evaluated share configuration.
type Row struct {
	Label    string
	URL      string
	Relics   urlstate.RelicLevels
	Buffs    urlstate.OtherBuffs
	TotalDps float64
}

// Build decodes each share URL, applies its state on top of the base request
// and evaluates it. Rows come back in input order; sorting is the exporter's
// concern.
func Build(ctx context.Context, calc Calculator, base party.CalcRequest, shareURLs []string) ([]Row, error) {
	if len(shareURLs) == 0 {
		return nil, fmt.Errorf("no share urls")
	}
	if len(base.Party) == 0 {
		return nil, fmt.Errorf("base party is empty")
	}

	rows := make([]Row, 0, len(shareURLs))
	for i, raw := range shareURLs {
		relics, buffs, applied, err := urlstate.ParseShareURL(raw)
		if err != nil {
			return nil, fmt.Errorf("share %d: parse %q: %w", i+1, raw, err)
		}
		if !applied.Relics && !applied.Other {
			return nil, fmt.Errorf("share %d: %q carries no state", i+1, raw)
		}

		req := base
		req.Options.SetRelicLevels(relics)
		req.Options.GuildBlessing = buffs.GuildBlessing
		if unit, err := strconv.ParseFloat(buffs.UnitLevelSumBuff, 64); err == nil {
			req.Options.UnitLevelSumBuff = unit
		}
		req.Options = party.NormalizeOptions(req.Options)

		res, err := calc.Calc(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("share %d: calc: %w", i+1, err)
		}
		res.RecomputeShares()

		rows = append(rows, Row{
			Label:    fmt.Sprintf("#%d", i+1),
			URL:      raw,
			Relics:   relics,
			Buffs:    buffs,
			TotalDps: res.TotalDps,
		})
	}
	return rows, nil
}
