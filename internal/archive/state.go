package archive

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// State is the per-channel fetch checkpoint. Processed share keys live in the
// SQLite store, not here, so losing the state file only costs a re-fetch.
type State struct {
	Channels       map[string]ChannelState `json:"channels"`
	LastRunStarted time.Time               `json:"lastRunStarted"`
	LastRunEnded   time.Time               `json:"lastRunEnded"`
}

type ChannelState struct {
	LastSeenMessageID string    `json:"lastSeenMessageId"`
	LastSeenAt        time.Time `json:"lastSeenAt"`
}

func LoadState(path string) (State, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{Channels: map[string]ChannelState{}}, nil
		}
		return State{}, err
	}

	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		return State{}, err
	}
	if st.Channels == nil {
		st.Channels = map[string]ChannelState{}
	}
	return st, nil
}

func SaveState(path string, st State) error {
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
