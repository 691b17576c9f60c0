package export

import (
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"linkedin-jobs-export/internal/config"
	"linkedin-jobs-export/internal/observability"
	"linkedin-jobs-export/internal/record"
	"linkedin-jobs-export/internal/scraper"
)

const fallbackSuffix = ".temp_dict"

type Exporter struct {
	cfg    *config.Config
	logger *observability.Logger
}

func NewExporter(cfg *config.Config, logger *observability.Logger) *Exporter {
	return &Exporter{cfg: cfg, logger: logger}
}

// Export writes records to <output_dir>/<FileName(baseName, keyword)>.xlsx and
// returns its path. If the workbook cannot be written, the raw records go to a
// sidecar file instead and the sidecar's path is returned. An error is
// returned only when the sidecar cannot be written either.
func (e *Exporter) Export(records []*record.Record, baseName, keyword string) (string, error) {
	xlsxPath := filepath.Join(e.cfg.GetOutputDir(), FileName(baseName, keyword)+".xlsx")

	if err := e.writeWorkbook(xlsxPath, records); err != nil {
		e.logger.Error("Uncaught exception while processing excel, writing raw records",
			"path", xlsxPath,
			"records", len(records),
			"error", fmt.Sprintf("%+v", err),
		)
		path, ferr := e.writeFallback(xlsxPath+fallbackSuffix, records)
		if ferr != nil {
			return "", fmt.Errorf("export workbook: %w; fallback: %w", err, ferr)
		}
		e.logger.Warn("Saved raw data as temp", "path", path)
		return path, nil
	}

	e.logger.Info("Workbook written",
		"path", xlsxPath,
		"records", len(records),
	)
	return xlsxPath, nil
}

type sheetStyles struct {
	header int
	body   int
	link   int
}

func (e *Exporter) writeWorkbook(path string, records []*record.Record) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while building workbook: %v", r)
		}
	}()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := e.cfg.Export.SheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	columns := record.Columns(records)
	if len(columns) > 0 {
		if err := e.fillSheet(f, sheet, columns, records); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (e *Exporter) fillSheet(f *excelize.File, sheet string, columns []string, records []*record.Record) error {
	styles, err := e.newStyles(f)
	if err != nil {
		return err
	}

	for c, name := range columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, name); err != nil {
			return fmt.Errorf("write header %s: %w", cell, err)
		}
	}

	linkCol := 0
	for r, rec := range records {
		for c, col := range columns {
			value, ok := rec.Get(col)
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}

			if col == scraper.KeyLink && value != "" {
				linkCol = c + 1
				if err := f.SetCellStr(sheet, cell, e.cfg.Export.LinkLabel); err != nil {
					return fmt.Errorf("write %s: %w", cell, err)
				}
				if err := f.SetCellHyperLink(sheet, cell, value, "External"); err != nil {
					return fmt.Errorf("hyperlink %s: %w", cell, err)
				}
				continue
			}
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				return fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}

	for c, col := range columns {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, columnWidth(col, records)); err != nil {
			return fmt.Errorf("column width %s: %w", name, err)
		}
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeader, styles.header); err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	lastCell, _ := excelize.CoordinatesToCellName(len(columns), len(records)+1)
	if err := f.SetCellStyle(sheet, "A2", lastCell, styles.body); err != nil {
		return fmt.Errorf("body style: %w", err)
	}
	if linkCol > 0 {
		top, _ := excelize.CoordinatesToCellName(linkCol, 2)
		bottom, _ := excelize.CoordinatesToCellName(linkCol, len(records)+1)
		if err := f.SetCellStyle(sheet, top, bottom, styles.link); err != nil {
			return fmt.Errorf("link style: %w", err)
		}
	}
	return nil
}

func (e *Exporter) newStyles(f *excelize.File) (*sheetStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	font := e.cfg.Export.FontName

	header, err := f.NewStyle(&excelize.Style{
		Border: border,
		Font:   &excelize.Font{Family: font, Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	body, err := f.NewStyle(&excelize.Style{
		Border: border,
		Font:   &excelize.Font{Family: font},
	})
	if err != nil {
		return nil, fmt.Errorf("body style: %w", err)
	}
	link, err := f.NewStyle(&excelize.Style{
		Border: border,
		Font:   &excelize.Font{Family: font, Color: "0563C1", Underline: "single"},
	})
	if err != nil {
		return nil, fmt.Errorf("link style: %w", err)
	}

	return &sheetStyles{header: header, body: body, link: link}, nil
}

// columnWidth is the longest of the header and every raw value in the
// column, capped at the workbook maximum.
func columnWidth(col string, records []*record.Record) float64 {
	width := utf8.RuneCountInString(col)
	for _, rec := range records {
		if n := utf8.RuneCountInString(rec.Value(col)); n > width {
			width = n
		}
	}
	if width > excelize.MaxColumnWidth {
		width = excelize.MaxColumnWidth
	}
	return float64(width)
}
