package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
)

// XLSXWriter maintains a local workbook mirror of the archive. Every append
// rewrites the whole sheet so rows stay sorted and deduplicated even when the
// file was edited by hand between runs.
type XLSXWriter struct {
	path      string
	sheetName string

	mu sync.Mutex
}

func NewXLSXWriter(path string, sheetName string) *XLSXWriter {
	if strings.TrimSpace(sheetName) == "" {
		sheetName = "shares"
	}
	return &XLSXWriter{path: filepath.Clean(path), sheetName: sheetName}
}

var xlsxHeader = []string{
	"FetchedAt",
	"DiscordChannelID",
	"DiscordMessageID",
	"DiscordMessageURL",
	"DiscordAuthor",
	"DiscordMessageCreatedAt",
	"Key",
	"ShareURL",
	"RelicToken",
	"OtherToken",
	"RelicLevels",
	"RelicTotal",
	"GuildBlessing",
	"UnitLevelSumBuff",
	"PetLevelSum",
}

// Column order of the local workbook.
const (
	idxFetchedAt        = 0
	idxChannelID        = 1
	idxMessageID        = 2
	idxMessageURL       = 3
	idxAuthor           = 4
	idxMessageCreatedAt = 5
	idxKey              = 6
	idxShareURL         = 7
	idxRelicToken       = 8
	idxOtherToken       = 9
	idxRelicLevels      = 10
	idxRelicTotal       = 11
	idxGuildBlessing    = 12
	idxUnitLevelSum     = 13
	idxPetLevelSum      = 14
)

type xlsxRecord struct {
	Key        string
	RelicTotal int
	Row        []interface{}
}

// rowForShare lays a share out in xlsxHeader column order.
func rowForShare(sh Share, m Message) []interface{} {
	levels := make([]string, len(sh.Relics))
	for i, lv := range sh.Relics {
		levels[i] = strconv.Itoa(lv)
	}

	return []interface{}{
		time.Now().Format(time.RFC3339),
		m.ChannelID,
		m.ID,
		MessageURL(m.ChannelID, m.ID),
		m.Author,
		m.CreatedAt.Format(time.RFC3339),
		sh.Key,
		sh.URL,
		sh.RelicToken,
		sh.OtherToken,
		strings.Join(levels, ","),
		sh.RelicTotal(),
		sh.Buffs.GuildBlessing,
		sh.Buffs.UnitLevelSumBuff,
		sh.Buffs.PetLevelSum.String(),
	}
}

func (w *XLSXWriter) AppendShare(ctx context.Context, sh Share, m Message) error {
	_ = ctx
	if strings.TrimSpace(sh.Key) == "" {
		return fmt.Errorf("xlsx writer: empty share key")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	recsByKey, err := w.loadExisting()
	if err != nil {
		return err
	}

	// Do not overwrite existing keys.
	if _, ok := recsByKey[sh.Key]; !ok {
		recsByKey[sh.Key] = xlsxRecord{Key: sh.Key, RelicTotal: sh.RelicTotal(), Row: rowForShare(sh, m)}
	}

	recs := make([]xlsxRecord, 0, len(recsByKey))
	for _, r := range recsByKey {
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].RelicTotal != recs[j].RelicTotal {
			return recs[i].RelicTotal > recs[j].RelicTotal
		}
		return recs[i].Key < recs[j].Key
	})

	return w.writeAll(recs)
}

func (w *XLSXWriter) loadExisting() (map[string]xlsxRecord, error) {
	recsByKey := map[string]xlsxRecord{}
	if _, err := os.Stat(w.path); err != nil {
		return recsByKey, nil
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("xlsx open %s: %w", w.path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(w.sheetName)
	if err != nil {
		// If the sheet doesn't exist, treat as empty
		return recsByKey, nil
	}

	for i, r := range rows {
		// assume first row is header
		if i == 0 {
			continue
		}
		if len(r) <= idxKey || strings.TrimSpace(r[idxKey]) == "" {
			continue
		}
		row := make([]interface{}, len(xlsxHeader))
		for c := range row {
			if c < len(r) {
				row[c] = r[c]
			} else {
				row[c] = ""
			}
		}
		key := strings.TrimSpace(r[idxKey])
		recsByKey[key] = xlsxRecord{Key: key, RelicTotal: cellInt(row[idxRelicTotal]), Row: row}
	}
	return recsByKey, nil
}

func (w *XLSXWriter) writeAll(recs []xlsxRecord) error {
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(w.sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if w.sheetName != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	for c, h := range xlsxHeader {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(w.sheetName, cell, h); err != nil {
			return err
		}
	}
	for i, rec := range recs {
		for c, v := range rec.Row {
			cell, err := excelize.CoordinatesToCellName(c+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(w.sheetName, cell, v); err != nil {
				return err
			}
		}
	}

	tmp := w.path + ".tmp"
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("xlsx save %s: %w", tmp, err)
	}
	return os.Rename(tmp, w.path)
}

func cellInt(v interface{}) int {
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
