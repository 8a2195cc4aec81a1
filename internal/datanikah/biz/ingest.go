package biz

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kart-io/logger"

	"github.com/kart-io/datanikah/internal/datanikah/store"
	"github.com/kart-io/datanikah/internal/model"
	"github.com/kart-io/datanikah/internal/pkg/spreadsheet"
	"github.com/kart-io/datanikah/pkg/utils/errors"
)

// ImportService ingests spreadsheet uploads into the record store.
type ImportService struct {
	store store.Factory
	cache store.StatsCache
}

// NewImportService creates a new ImportService. cache may be nil.
func NewImportService(store store.Factory, cache store.StatsCache) *ImportService {
	return &ImportService{store: store, cache: cache}
}

// Import reads the first sheet of an .xls/.xlsx upload and ingests it.
func (s *ImportService) Import(ctx context.Context, filename string, r io.ReadSeeker) (*model.ImportResult, error) {
	format, err := spreadsheet.DetectFormat(filename)
	if err != nil {
		return nil, errors.ErrImportInvalidFile.WithCause(err)
	}

	rows, err := spreadsheet.ReadFirstSheet(r, format)
	if err != nil {
		return nil, errors.ErrImportUnreadable.WithCause(err)
	}

	return s.ImportRows(ctx, rows)
}

// ImportRows ingests rows whose first row is the header.
//
// Rows are processed strictly in order, one store round trip at a time, so
// a duplicate later in the same upload sees the earlier insert. A malformed
// cell degrades to its default; a store error aborts the upload and the
// partial result is returned alongside the error.
func (s *ImportService) ImportRows(ctx context.Context, rows [][]string) (*model.ImportResult, error) {
	if len(rows) == 0 || isBlank(rows[0]) {
		return nil, errors.ErrImportNoHeader
	}

	start := time.Now()
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	result := &model.ImportResult{}
	for i, row := range rows[1:] {
		line := i + 2
		if isBlank(row) {
			result.Blank++
			continue
		}
		result.Rows++

		record := NormalizeRow(rowMap(headers, row))

		_, err := s.store.Records().FindByKey(ctx, record.NoAktanikah, record.NamaKUA)
		switch {
		case err == nil:
			result.Duplicates++
			continue
		case !stderrors.Is(err, store.ErrNotFound):
			return result, s.abort(result, line, err)
		}

		if err := s.store.Records().Insert(ctx, record); err != nil {
			return result, s.abort(result, line, err)
		}
		result.Inserted++
	}

	if result.Inserted > 0 && s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			logger.Warnw("failed to invalidate dashboard cache", "error", err.Error())
		}
	}

	logger.Infow("spreadsheet imported",
		"rows", result.Rows,
		"inserted", result.Inserted,
		"duplicates", result.Duplicates,
		"blank", result.Blank,
		"latency", time.Since(start).String(),
	)
	return result, nil
}

func (s *ImportService) abort(result *model.ImportResult, line int, err error) error {
	logger.Errorw("spreadsheet import aborted",
		"line", line,
		"inserted", result.Inserted,
		"error", err.Error(),
	)
	return errors.ErrImportFailed.WithCause(fmt.Errorf("row %d: %w", line, err))
}

// rowMap pairs headers with cells; missing cells become "".
// A repeated header keeps its right-most cell.
func rowMap(headers, row []string) map[string]string {
	m := make(map[string]string, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		if i < len(row) {
			m[h] = row[i]
		} else {
			m[h] = ""
		}
	}
	return m
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
