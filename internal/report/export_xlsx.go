package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ushigai/LuckyDefense-tools/internal/urlstate"
)

// ExportComparisonXLSX writes the comparison workbook and returns the file
// path. The Comparison sheet carries the headline numbers; Comparison+Relics
// repeats every row with the twelve per-slot levels.
func ExportComparisonXLSX(outDir string, name string, rows []Row) (string, error) {
	if len(rows) == 0 {
		return "", fmt.Errorf("no rows to export")
	}

	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalDps != sorted[j].TotalDps {
			return sorted[i].TotalDps > sorted[j].TotalDps
		}
		return sorted[i].Label < sorted[j].Label
	})

	// Percent baseline: the weakest configuration => 100%.
	baseline := sorted[len(sorted)-1].TotalDps

	f := excelize.NewFile()
	sheet := "Comparison"
	_ = f.SetSheetName("Sheet1", sheet)
	sheetRelics := "Comparison+Relics"
	_, _ = f.NewSheet(sheetRelics)

	headers := []string{"Config", "Total DPS", "DPS %", "Guild Blessing", "Unit Lv Sum", "Pet Lv Sum", "Relic Total", "Share URL"}
	for c, h := range headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return "", err
		}
		f.SetCellValue(sheet, cell, h)
	}

	relicHeaders := append([]string{"Config", "Total DPS"}, urlstate.RelicSlots[:]...)
	for c, h := range relicHeaders {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return "", err
		}
		f.SetCellValue(sheetRelics, cell, h)
	}

	headerStyleID, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return "", err
	}
	lastCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", lastCell, headerStyleID); err != nil {
		return "", err
	}
	lastRelicCell, _ := excelize.CoordinatesToCellName(len(relicHeaders), 1)
	if err := f.SetCellStyle(sheetRelics, "A1", lastRelicCell, headerStyleID); err != nil {
		return "", err
	}

	for i, r := range sorted {
		rowNum := i + 2
		total := 0
		for _, lv := range r.Relics {
			total += lv
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), r.Label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), r.TotalDps)
		if baseline > 0 {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), r.TotalDps/baseline)
		}
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), r.Buffs.GuildBlessing)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), r.Buffs.UnitLevelSumBuff)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), r.Buffs.PetLevelSum.String())
		f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum), total)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", rowNum), r.URL)

		f.SetCellValue(sheetRelics, fmt.Sprintf("A%d", rowNum), r.Label)
		f.SetCellValue(sheetRelics, fmt.Sprintf("B%d", rowNum), r.TotalDps)
		for slot, lv := range r.Relics {
			cell, err := excelize.CoordinatesToCellName(slot+3, rowNum)
			if err != nil {
				return "", err
			}
			f.SetCellValue(sheetRelics, cell, lv)
		}
	}

	// Percent formatting: 1.0 => 100%
	pctStyleID, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		return "", err
	}
	if err := f.SetCellStyle(sheet, "C2", fmt.Sprintf("C%d", len(sorted)+1), pctStyleID); err != nil {
		return "", err
	}

	if idx, err := f.GetSheetIndex(sheet); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	timestamp := time.Now().Format("20060102")
	filename := filepath.Join(outDir, fmt.Sprintf("%s_share_report_%s.xlsx", timestamp, name))
	if err := f.SaveAs(filename); err != nil {
		return "", err
	}
	return filename, nil
}
