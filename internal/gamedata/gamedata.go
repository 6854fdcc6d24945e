// Package gamedata loads the calculator's static game content (characters,
// relics, enemies, runes) from JSON files shared with the UI.
package gamedata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type Character struct {
	ID                  json.Number `json:"id"`
	Name                string      `json:"name"`
	Rarity              string      `json:"rarity"`
	AttackDamage        int         `json:"attack_damage"`
	UpgradeAttackDamage int         `json:"upgrade_attack_damage"`
	AttackSpeed         float64     `json:"attack_speed"`
	SP                  int         `json:"sp"`
}

type Relic struct {
	No        int                `json:"no"`
	NoStr     string             `json:"no_str"`
	Grid      string             `json:"grid"`
	Tier      string             `json:"tier"`
	Name      string             `json:"name"`
	Effects   map[string]float64 `json:"effects"`
	Increment string             `json:"increment"`
	Remarks   string             `json:"remarks"`
	ImageURL  string             `json:"image_url"`
}

type Enemy struct {
	Name    string  `json:"name"`
	Defense float64 `json:"defense"`
}

type RuneRarity struct {
	Description string    `json:"description"`
	Buff        []float64 `json:"buff"`
}

type Rune struct {
	Name string                `json:"name"`
	Data map[string]RuneRarity `json:"data"`
}

// DB indexes all loaded game content.
type DB struct {
	Characters map[string]Character
	Relics     map[string]Relic
	Enemies    map[string]Enemy
	Runes      map[string]Rune
}

// HasCharacter reports whether the character id exists.
func (db *DB) HasCharacter(id string) bool {
	_, ok := db.Characters[id]
	return ok
}

// Load reads the four content files from dir. runes.json may be absent.
func Load(dir string) (*DB, error) {
	chars, err := LoadCharacters(filepath.Join(dir, "characters.json"))
	if err != nil {
		return nil, err
	}
	relics, err := LoadRelics(filepath.Join(dir, "relics.json"))
	if err != nil {
		return nil, err
	}
	enemies, err := LoadEnemies(filepath.Join(dir, "enemy.json"))
	if err != nil {
		return nil, err
	}
	runes, err := LoadRunes(filepath.Join(dir, "runes.json"))
	if err != nil {
		return nil, err
	}
	return &DB{Characters: chars, Relics: relics, Enemies: enemies, Runes: runes}, nil
}

func LoadCharacters(path string) (map[string]Character, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read characters (%s): %w", path, err)
	}
	var obj struct {
		Characters []Character `json:"characters"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, fmt.Errorf("parse characters: %w", err)
	}
	out := make(map[string]Character, len(obj.Characters))
	for _, c := range obj.Characters {
		out[c.ID.String()] = c
	}
	return out, nil
}

func LoadRelics(path string) (map[string]Relic, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read relics (%s): %w", path, err)
	}
	var obj struct {
		Artifacts []Relic `json:"artifacts"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, fmt.Errorf("parse relics: %w", err)
	}
	out := make(map[string]Relic, len(obj.Artifacts))
	for _, a := range obj.Artifacts {
		if _, dup := out[a.Name]; dup {
			return nil, fmt.Errorf("duplicate relic name: %q", a.Name)
		}
		out[a.Name] = a
	}
	return out, nil
}

func LoadEnemies(path string) (map[string]Enemy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read enemies (%s): %w", path, err)
	}
	var obj struct {
		Enemies []Enemy `json:"enemies"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, fmt.Errorf("parse enemies: %w", err)
	}
	out := make(map[string]Enemy, len(obj.Enemies))
	for _, e := range obj.Enemies {
		out[e.Name] = e
	}
	return out, nil
}

// LoadRunes tolerates a missing file: runes are optional content.
func LoadRunes(path string) (map[string]Rune, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]Rune{}, nil
		}
		return nil, fmt.Errorf("read runes (%s): %w", path, err)
	}
	var list []Rune
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("parse runes: %w", err)
	}
	out := make(map[string]Rune, len(list))
	for _, r := range list {
		if r.Name == "" {
			continue
		}
		out[r.Name] = r
	}
	return out, nil
}
