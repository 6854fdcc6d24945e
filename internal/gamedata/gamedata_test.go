package gamedata

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "characters.json", `{"characters":[
		{"id":5021,"name":"ヘイリー","rarity":"immortal","attack_damage":100,"upgrade_attack_damage":10,"attack_speed":0.8,"sp":250},
		{"id":"1001","name":"弓兵","rarity":"common","attack_damage":10,"upgrade_attack_damage":1,"attack_speed":1.0,"sp":0}
	]}`)
	writeFile(t, dir, "relics.json", `{"artifacts":[
		{"no":1,"name":"力のポーション","tier":"A","effects":{"lv1":10,"lv11":20}},
		{"no":2,"name":"マネーガン","tier":"B","effects":{"lv1":1,"lv11":5}}
	]}`)
	writeFile(t, dir, "enemy.json", `{"enemies":[{"name":"ノーマル80Wボス","defense":148}]}`)

	db, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !db.HasCharacter("5021") || !db.HasCharacter("1001") {
		t.Fatalf("numeric and string ids should both index, got %v", db.Characters)
	}
	if db.Characters["5021"].SP != 250 {
		t.Fatalf("unexpected character: %+v", db.Characters["5021"])
	}
	if db.Relics["力のポーション"].Effects["lv11"] != 20 {
		t.Fatalf("unexpected relic: %+v", db.Relics["力のポーション"])
	}
	if db.Enemies["ノーマル80Wボス"].Defense != 148 {
		t.Fatalf("unexpected enemy: %+v", db.Enemies)
	}
	if len(db.Runes) != 0 {
		t.Fatalf("missing runes.json should load as empty, got %v", db.Runes)
	}
}

func TestLoadRelicsDuplicate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "relics.json", `{"artifacts":[{"no":1,"name":"バット"},{"no":2,"name":"バット"}]}`)
	if _, err := LoadRelics(filepath.Join(dir, "relics.json")); err == nil {
		t.Fatalf("duplicate relic names must be rejected")
	}
}

func TestLoadRunes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "runes.json", `[
		{"name":"怒り","data":{"epic":{"description":"攻撃力+10%","buff":[10]}}},
		{"name":""}
	]`)
	runes, err := LoadRunes(filepath.Join(dir, "runes.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runes) != 1 {
		t.Fatalf("nameless entries should be skipped, got %v", runes)
	}
	if got := runes["怒り"].Data["epic"].Buff[0]; got != 10 {
		t.Fatalf("unexpected rune buff: %v", got)
	}
}
