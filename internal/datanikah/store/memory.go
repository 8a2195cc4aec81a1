package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kart-io/datanikah/internal/model"
)

// memoryStore implements Factory in process memory with the same query
// semantics as the MongoDB store. Used for local runs and tests.
type memoryStore struct {
	records *memoryRecords
	users   *memoryUsers
}

var _ Factory = (*memoryStore)(nil)

// NewMemoryFactory returns an empty in-memory Factory.
func NewMemoryFactory() Factory {
	return &memoryStore{
		records: &memoryRecords{},
		users:   &memoryUsers{byEmail: make(map[string]*model.User)},
	}
}

func (s *memoryStore) Records() RecordStore { return s.records }
func (s *memoryStore) Users() UserStore     { return s.users }
func (s *memoryStore) Close() error         { return nil }

type memoryRecord struct {
	seq    uint64
	record model.MarriageRecord
}

type memoryRecords struct {
	mu   sync.RWMutex
	seq  uint64
	rows []*memoryRecord
}

func (s *memoryRecords) Find(ctx context.Context, q Query) ([]*model.MarriageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	matched := make([]*memoryRecord, 0)
	for _, row := range s.rows {
		if matches(&row.record, q.Filters) {
			matched = append(matched, row)
		}
	}
	s.mu.RUnlock()

	if q.SortBy != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			c := compare(fieldValue(&matched[i].record, q.SortBy), fieldValue(&matched[j].record, q.SortBy))
			if c == 0 {
				c = compareUint(matched[i].seq, matched[j].seq)
			}
			if q.Desc {
				return c > 0
			}
			return c < 0
		})
	}

	if q.Limit > 0 && int64(len(matched)) > q.Limit {
		matched = matched[:q.Limit]
	}

	out := make([]*model.MarriageRecord, len(matched))
	for i, row := range matched {
		r := row.record
		out[i] = &r
	}
	return out, nil
}

func (s *memoryRecords) Count(ctx context.Context, filters ...Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, row := range s.rows {
		if matches(&row.record, filters) {
			n++
		}
	}
	return n, nil
}

func (s *memoryRecords) FindByKey(ctx context.Context, noAktanikah, namaKUA string) (*model.MarriageRecord, error) {
	found, err := s.Find(ctx, Query{
		Filters: []Filter{Eq(FieldNoAktanikah, noAktanikah), Eq(FieldNamaKUA, namaKUA)},
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	return found[0], nil
}

func (s *memoryRecords) Insert(ctx context.Context, r *model.MarriageRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.Search = searchKeys(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.rows = append(s.rows, &memoryRecord{seq: s.seq, record: *r})
	return nil
}

func matches(r *model.MarriageRecord, filters []Filter) bool {
	for _, f := range filters {
		c := compare(fieldValue(r, f.Field), f.Value)
		var ok bool
		switch f.Op {
		case OpEq:
			ok = c == 0
		case OpGte:
			ok = c >= 0
		case OpLte:
			ok = c <= 0
		case OpLt:
			ok = c < 0
		}
		if !ok {
			return false
		}
	}
	return true
}

func fieldValue(r *model.MarriageRecord, field string) interface{} {
	switch field {
	case FieldNoAktanikah:
		return r.NoAktanikah
	case FieldNamaKUA:
		return r.NamaKUA
	case FieldTanggalAkad:
		return r.TanggalAkad
	case FieldCreatedAt:
		return r.CreatedAt
	case FieldSearchNoAktanikah:
		return r.Search.NoAktanikah
	case FieldSearchNamaSuami:
		return r.Search.NamaSuami
	case FieldSearchNamaIstri:
		return r.Search.NamaIstri
	case FieldSearchNamaKUA:
		return r.Search.NamaKUA
	default:
		return nil
	}
}

// compare orders strings bytewise, like MongoDB's default collation.
// Mismatched or unknown types compare as unequal-low.
func compare(a, b interface{}) int {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return -1
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return -1
		}
		return av.Compare(bv)
	default:
		return -1
	}
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

type memoryUsers struct {
	mu      sync.RWMutex
	byEmail map[string]*model.User
}

func (s *memoryUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memoryUsers) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(user.Email)
	if _, ok := s.byEmail[email]; ok {
		return ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	user.Email = email
	user.CreatedAt = time.Now().UTC()

	cp := *user
	s.byEmail[email] = &cp
	return nil
}
