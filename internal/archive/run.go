package archive

import (
	"context"
	"fmt"
	"time"
)

type shareWriter interface {
	AppendShare(ctx context.Context, sh Share, m Message) error
}

type multiWriter struct {
	writers []shareWriter
}

func (mw multiWriter) AppendShare(ctx context.Context, sh Share, m Message) error {
	for _, w := range mw.writers {
		if w == nil {
			continue
		}
		if err := w.AppendShare(ctx, sh, m); err != nil {
			return err
		}
	}
	return nil
}

type dryRunWriter struct{}

func (dryRunWriter) AppendShare(ctx context.Context, sh Share, m Message) error {
	_ = ctx
	fmt.Printf("would append key=%s msg=%s relics=%v\n", sh.Key, m.ID, sh.Relics)
	return nil
}

// Run walks the configured channels, extracts configurator share links from
// new messages and appends one row per unseen token pair.
func Run(ctx context.Context, cfg Config) error {
	fmt.Printf("Starting share_archiver...\n")
	if cfg.Run.DryRun {
		fmt.Printf("Dry-run mode: no writes to Google Sheets (local XLSX still written)\n")
	}

	st, err := LoadState(cfg.Run.StateFile)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if cfg.Run.IgnoreStateCheckpoint {
		fmt.Printf("ignoreStateCheckpoint=true: ignoring channel checkpoints (share store still used)\n")
		st.Channels = map[string]ChannelState{}
	}
	st.LastRunStarted = time.Now()

	store, err := OpenStore(cfg.Run.DBFile)
	if err != nil {
		return fmt.Errorf("open share store: %w", err)
	}
	defer store.Close()

	dc, err := NewDiscordClient(cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("discord client: %w", err)
	}
	defer dc.Close()

	writers := make([]shareWriter, 0, 3)
	// Local XLSX is always written.
	writers = append(writers, NewXLSXWriter(cfg.Run.XLSXFile, cfg.Sheet.Name))
	// In dry-run, also print what would be appended.
	if cfg.Run.DryRun {
		writers = append(writers, dryRunWriter{})
	} else {
		writers = append(writers, NewSheetsClient(cfg.AppsScript.WebAppURL, cfg.AppsScript.APIKey, cfg.Sheet.ID, cfg.Sheet.Name))
	}
	writer := multiWriter{writers: writers}

	ex := NewExtractor(cfg.Run.ShareHost)
	cutoff := time.Now().Add(-time.Duration(cfg.Run.SinceDays) * 24 * time.Hour)
	seenKeys := map[string]struct{}{}
	totalNewKeys := 0

	for i, chID := range cfg.Discord.ChannelIDs {
		fmt.Printf("Processing channel %d/%d: %s\n", i+1, len(cfg.Discord.ChannelIDs), chID)
		stopAfter := st.Channels[chID].LastSeenMessageID
		if cfg.Run.IgnoreStateCheckpoint {
			stopAfter = ""
		}

		msgs, newestSeen, err := dc.FetchRecentMessages(ctx, chID, stopAfter, cutoff)
		if err != nil {
			return err
		}
		fmt.Printf("Fetched %d messages from channel %s\n", len(msgs), chID)

		channelNewKeys, err := archiveMessages(ctx, ex, store, writer, seenKeys, msgs)
		if err != nil {
			return err
		}
		totalNewKeys += channelNewKeys
		fmt.Printf("Processed %d new shares from channel %s\n", channelNewKeys, chID)

		if !cfg.Run.IgnoreStateCheckpoint && newestSeen != "" {
			st.Channels[chID] = ChannelState{LastSeenMessageID: newestSeen, LastSeenAt: time.Now()}
		}
	}

	st.LastRunEnded = time.Now()
	if cfg.Run.DryRun {
		fmt.Printf("done. new shares: %d. state not written (dry-run)\n", totalNewKeys)
		return nil
	}
	if err := SaveState(cfg.Run.StateFile, st); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	fmt.Printf("done. new shares: %d. state: %s\n", totalNewKeys, cfg.Run.StateFile)
	return nil
}

// archiveMessages appends one row per share not yet in the store. seenKeys
// dedupes within the run so a link posted to two channels lands once.
func archiveMessages(ctx context.Context, ex *Extractor, store *Store, writer shareWriter, seenKeys map[string]struct{}, msgs []Message) (int, error) {
	newKeys := 0
	for _, m := range msgs {
		shares := ex.ExtractShares(m.Content)
		if len(shares) == 0 {
			continue
		}

		for _, sh := range shares {
			if _, ok := seenKeys[sh.Key]; ok {
				continue
			}
			seenKeys[sh.Key] = struct{}{}

			seen, err := store.Seen(ctx, sh.Key)
			if err != nil {
				return newKeys, err
			}
			if seen {
				continue
			}

			if err := writer.AppendShare(ctx, sh, m); err != nil {
				return newKeys, err
			}
			if err := store.Record(ctx, sh, m); err != nil {
				return newKeys, err
			}
			newKeys++
		}
	}
	return newKeys, nil
}
