package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ushigai/LuckyDefense-tools/internal/party"
	"github.com/ushigai/LuckyDefense-tools/internal/urlstate"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	var req party.CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Party) == 0 {
		writeError(w, http.StatusBadRequest, "options/party invalid")
		return
	}

	req.Options = party.NormalizeOptions(req.Options)
	for i, m := range req.Party {
		nm, err := party.NormalizeMember(m, s.db.HasCharacter)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.Party[i] = nm
	}

	res, err := s.engine.Calc(r.Context(), req)
	if err != nil {
		s.log.Warn("engine call failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "engine unavailable")
		return
	}
	res.RecomputeShares()
	writeJSON(w, http.StatusOK, res)
}

// stateGroup is one decoded URL group plus whether its token applied.
type relicState struct {
	Levels  urlstate.RelicLevels `json:"levels"`
	Applied bool                 `json:"applied"`
}

type otherState struct {
	GuildBlessing    int    `json:"guildBlessing"`
	UnitLevelSumBuff string `json:"unitLevelSumBuff"`
	PetLevelSum      string `json:"petLevelSum"`
	Applied          bool   `json:"applied"`
}

type stateResponse struct {
	Relics     relicState `json:"relics"`
	OtherBuffs otherState `json:"otherBuffs"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	relics, buffs, ap := urlstate.Apply(r.URL.Query())
	writeJSON(w, http.StatusOK, stateResponse{
		Relics: relicState{Levels: relics, Applied: ap.Relics},
		OtherBuffs: otherState{
			GuildBlessing:    buffs.GuildBlessing,
			UnitLevelSumBuff: buffs.UnitLevelSumBuff,
			PetLevelSum:      buffs.PetLevelSum.String(),
			Applied:          ap.Other,
		},
	})
}

type shareRequest struct {
	RelicLevels      []float64 `json:"relicLevels"`
	GuildBlessing    int       `json:"guildBlessing"`
	UnitLevelSumBuff string    `json:"unitLevelSumBuff"`
	PetLevelSum      string    `json:"petLevelSum"`
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.RelicLevels) != urlstate.NumRelicSlots {
		writeError(w, http.StatusBadRequest, "relicLevels must have 12 entries")
		return
	}

	var relics urlstate.RelicLevels
	for i, v := range req.RelicLevels {
		relics[i] = urlstate.ClampRelicLevel(v)
	}
	buffs := urlstate.OtherBuffs{
		GuildBlessing:    req.GuildBlessing,
		UnitLevelSumBuff: req.UnitLevelSumBuff,
		PetLevelSum:      urlstate.PetLevelSumFromLabel(req.PetLevelSum),
	}

	u := urlstate.Encoded(s.public, relics, buffs)
	writeJSON(w, http.StatusOK, map[string]string{"url": u.String()})
}
