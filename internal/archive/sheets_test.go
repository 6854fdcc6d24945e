package archive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ushigai/LuckyDefense-tools/internal/urlstate"
)

func testShare() (Share, Message) {
	relics := urlstate.RelicLevels{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 1, 2}
	buffs := urlstate.OtherBuffs{GuildBlessing: 2, UnitLevelSumBuff: "3.5", PetLevelSum: urlstate.PetLevelSum400}
	r := urlstate.EncodeRelicLevels(relics)
	o := urlstate.EncodeOtherBuffs(buffs)
	sh := Share{
		URL:        "https://calc.example/?r=" + r + "&o=" + o,
		RelicToken: r,
		OtherToken: o,
		Relics:     relics,
		Buffs:      buffs,
	}
	sh.Key = ShareKey(r, o)
	m := Message{ID: "111", ChannelID: "222", Author: "alice", CreatedAt: time.Now()}
	return sh, m
}

func TestSheetsClientAppendShare(t *testing.T) {
	var got sheetsPostRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(sheetsPostResponse{OK: true, Appended: 1})
	}))
	defer srv.Close()

	sh, m := testShare()
	c := NewSheetsClient(srv.URL, "secret", "sheet-id", "shares")
	if err := c.AppendShare(context.Background(), sh, m); err != nil {
		t.Fatalf("append: %v", err)
	}

	if got.APIKey != "secret" || got.SheetID != "sheet-id" || got.SheetName != "shares" {
		t.Fatalf("envelope mismatch: %+v", got)
	}
	rec := got.Record
	if rec.Key != sh.Key || rec.MessageID != "111" || rec.ChannelID != "222" {
		t.Fatalf("record must carry key and message ids, got %+v", rec)
	}
	if len(rec.RelicLevels) != 12 || rec.RelicLevels[0] != 2 || rec.RelicTotal != 68 {
		t.Fatalf("relic levels mismatch: %+v", rec)
	}
	if rec.GuildBlessing != 2 || rec.UnitLevelSumBuff != "3.5" || rec.PetLevelSum != "400" {
		t.Fatalf("buffs mismatch: %+v", rec)
	}
}

func TestSheetsClientAppendShareError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sheetsPostResponse{OK: false, Error: "bad key"})
	}))
	defer srv.Close()

	sh, m := testShare()
	c := NewSheetsClient(srv.URL, "secret", "sheet-id", "shares")
	err := c.AppendShare(context.Background(), sh, m)
	if err == nil || !strings.Contains(err.Error(), "bad key") {
		t.Fatalf("want apps script error, got %v", err)
	}
}
