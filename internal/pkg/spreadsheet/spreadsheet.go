// Package spreadsheet reads the first worksheet of .xlsx and legacy .xls
// workbooks into plain string rows.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// DateLayout is the DD-MM-YYYY text date cells are converted to.
const DateLayout = "02-01-2006"

var literalPattern = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.`)

// Format is a supported workbook format.
type Format int

const (
	// FormatXLSX is Office Open XML (.xlsx).
	FormatXLSX Format = iota + 1
	// FormatXLS is the legacy BIFF format (.xls).
	FormatXLS
)

func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatXLS:
		return "xls"
	default:
		return "unknown"
	}
}

var (
	// ErrUnsupportedFormat is returned for files that are neither .xls nor .xlsx.
	ErrUnsupportedFormat = errors.New("spreadsheet: unsupported file format")
	// ErrNoSheet is returned when the workbook has no worksheet.
	ErrNoSheet = errors.New("spreadsheet: workbook has no sheet")
)

// DetectFormat picks the format from the file extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ReadFirstSheet returns every row of the first worksheet.
// Rows may have different lengths; trailing empty cells are not guaranteed.
func ReadFirstSheet(r io.ReadSeeker, format Format) ([][]string, error) {
	switch format {
	case FormatXLSX:
		return readXLSX(r)
	case FormatXLS:
		return readXLS(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if err := convertDateCells(f, sheets[0], rows); err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// convertDateCells rewrites date-styled numeric cells as DateLayout.
// GetRows renders them with the workbook's display format (often mm-dd-yy),
// which cannot be told apart from a typed DD-MM-YYYY value.
func convertDateCells(f *excelize.File, sheet string, rows [][]string) error {
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return err
	}

	props, err := f.GetWorkbookProps()
	if err != nil {
		return err
	}
	date1904 := props.Date1904 != nil && *props.Date1904

	dateStyles := make(map[int]bool)
	for i, row := range rows {
		if i >= len(raw) {
			break
		}
		for j := range row {
			if j >= len(raw[i]) || raw[i][j] == row[j] {
				continue
			}
			serial, err := strconv.ParseFloat(raw[i][j], 64)
			if err != nil {
				continue
			}

			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			styleID, err := f.GetCellStyle(sheet, cell)
			if err != nil {
				return err
			}
			isDate, ok := dateStyles[styleID]
			if !ok {
				style, err := f.GetStyle(styleID)
				if err != nil {
					return err
				}
				isDate = isDateFormat(style)
				dateStyles[styleID] = isDate
			}
			if !isDate {
				continue
			}

			t, err := excelize.ExcelDateToTime(serial, date1904)
			if err != nil {
				continue
			}
			row[j] = t.Format(DateLayout)
		}
	}
	return nil
}

// isDateFormat reports whether style displays a calendar date.
// Time-only formats are not dates.
func isDateFormat(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		code := strings.ToLower(*style.CustomNumFmt)
		// 去掉引号和方括号中的字面量，如 "Rp" 或 [Red]
		code = literalPattern.ReplaceAllString(code, "")
		return strings.ContainsAny(code, "dy")
	}
	switch n := style.NumFmt; {
	case n >= 14 && n <= 17, n == 22, n >= 27 && n <= 36, n >= 50 && n <= 58:
		return true
	}
	return false
}

func readXLS(r io.ReadSeeker) (rows [][]string, err error) {
	// The BIFF decoder panics on some corrupt inputs.
	defer func() {
		if p := recover(); p != nil {
			rows, err = nil, fmt.Errorf("open xls: corrupt workbook: %v", p)
		}
	}()

	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, ErrNoSheet
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, ErrNoSheet
	}

	rows = make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			cells = append(cells, xlsCell(row.Col(j)))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// xlsCell converts the RFC 3339 text the BIFF decoder produces for
// custom date formats to DateLayout. Built-in date formats are decoded as
// "YYYY.MM" without the day and stay as they are.
func xlsCell(v string) string {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.Format(DateLayout)
	}
	return v
}

// WriteTemplate writes an .xlsx workbook whose first sheet holds only headers.
func WriteTemplate(w io.Writer, sheet string, headers []string) error {
	book := excelize.NewFile()
	defer func() { _ = book.Close() }()

	if sheet != "" {
		if err := book.SetSheetName(book.GetSheetName(0), sheet); err != nil {
			return err
		}
	}
	if err := book.SetSheetRow(book.GetSheetName(0), "A1", &headers); err != nil {
		return err
	}
	_, err := book.WriteTo(w)
	return err
}
