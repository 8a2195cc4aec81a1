package biz

import (
	"context"
	"strings"

	"github.com/kart-io/logger"

	"github.com/kart-io/datanikah/internal/datanikah/store"
	"github.com/kart-io/datanikah/internal/model"
	"github.com/kart-io/datanikah/pkg/utils/errors"
)

// Search limits.
const (
	DefaultSearchLimit = 50
	MaxSearchLimit     = 200
)

var searchFields = map[string]string{
	model.SearchByNoAktanikah: store.FieldSearchNoAktanikah,
	model.SearchByNamaSuami:   store.FieldSearchNamaSuami,
	model.SearchByNamaIstri:   store.FieldSearchNamaIstri,
}

// RecordService serves the public and admin record search.
type RecordService struct {
	records store.RecordStore
}

// NewRecordService creates a new RecordService.
func NewRecordService(records store.RecordStore) *RecordService {
	return &RecordService{records: records}
}

// Search runs a prefix search on the field selected by req.Type.
// An empty keyword lists the most recently uploaded records.
func (s *RecordService) Search(ctx context.Context, req *model.SearchRequest) ([]*model.MarriageRecord, error) {
	searchType := req.Type
	if searchType == "" {
		searchType = model.SearchByNoAktanikah
	}
	field, ok := searchFields[searchType]
	if !ok {
		return nil, errors.ErrSearchTypeInvalid.WithMessagef("unknown search type %q", req.Type)
	}

	limit := req.Limit
	switch {
	case limit <= 0:
		limit = DefaultSearchLimit
	case limit > MaxSearchLimit:
		limit = MaxSearchLimit
	}

	q := store.Query{Limit: int64(limit)}
	if keyword := strings.TrimSpace(req.Keyword); keyword != "" {
		q.Filters = store.Prefix(field, keyword)
		q.SortBy = field
	} else {
		q.SortBy = store.FieldCreatedAt
		q.Desc = true
	}

	results, err := s.records.Find(ctx, q)
	if err != nil {
		logger.Errorw("record search failed",
			"type", searchType,
			"keyword", req.Keyword,
			"error", err.Error(),
		)
		return nil, errors.ErrRecordQuery.WithCause(err)
	}
	return results, nil
}
