package store

import (
	"context"
	"errors"
	"strings"

	"github.com/kart-io/datanikah/internal/model"
)

// Collection names.
const (
	CollectionMarriages = "marriages"
	CollectionUsers     = "users"
)

// Queryable field paths.
const (
	FieldNoAktanikah       = "noAktanikah"
	FieldNamaKUA           = "namaKUA"
	FieldTanggalAkad       = "tanggalAkad"
	FieldCreatedAt         = "createdAt"
	FieldSearchNoAktanikah = "search.noAktanikah"
	FieldSearchNamaSuami   = "search.namaSuami"
	FieldSearchNamaIstri   = "search.namaIstri"
	FieldSearchNamaKUA     = "search.namaKUA"
)

// PrefixSentinel is the maximal trailing character closing a prefix range.
const PrefixSentinel = "\uf8ff"

var (
	// ErrNotFound 表示记录不存在。
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicate 表示违反唯一约束。
	ErrDuplicate = errors.New("store: duplicate key")
)

// Op is a comparison operator.
type Op string

const (
	OpEq  Op = "$eq"
	OpGte Op = "$gte"
	OpLte Op = "$lte"
	OpLt  Op = "$lt"
)

// Filter is a single field predicate. Filters in a query are AND-ed.
type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

// Eq builds an equality filter.
func Eq(field string, value interface{}) Filter {
	return Filter{Field: field, Op: OpEq, Value: value}
}

// Prefix builds the closed range [upper(term), upper(term)+PrefixSentinel]
// which matches every value starting with the upper-cased term.
func Prefix(field, term string) []Filter {
	upper := strings.ToUpper(term)
	return []Filter{
		{Field: field, Op: OpGte, Value: upper},
		{Field: field, Op: OpLte, Value: upper + PrefixSentinel},
	}
}

// Query describes a filtered, ordered and limited read.
type Query struct {
	Filters []Filter
	SortBy  string
	Desc    bool
	// Limit of 0 means unlimited.
	Limit int64
}

// Factory 定义存储工厂接口。
type Factory interface {
	Records() RecordStore
	Users() UserStore
	Close() error
}

// RecordStore 定义婚姻记录存储接口。
type RecordStore interface {
	// Find returns the records matching q.
	Find(ctx context.Context, q Query) ([]*model.MarriageRecord, error)
	// Count returns the number of records matching every filter.
	Count(ctx context.Context, filters ...Filter) (int64, error)
	// FindByKey looks a record up by its uniqueness key. Returns ErrNotFound.
	FindByKey(ctx context.Context, noAktanikah, namaKUA string) (*model.MarriageRecord, error)
	// Insert assigns the ID, timestamps and search keys, then persists r.
	Insert(ctx context.Context, r *model.MarriageRecord) error
}

// UserStore 定义管理员用户存储接口。
type UserStore interface {
	// GetByEmail returns ErrNotFound when no user has the email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Create returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, user *model.User) error
}

// searchKeys derives the upper-cased prefix search keys of r.
func searchKeys(r *model.MarriageRecord) model.SearchKeys {
	return model.SearchKeys{
		NoAktanikah: strings.ToUpper(r.NoAktanikah),
		NamaSuami:   strings.ToUpper(r.Suami.Nama),
		NamaIstri:   strings.ToUpper(r.Istri.Nama),
		NamaKUA:     strings.ToUpper(r.NamaKUA),
	}
}

// normalizeEmail lower-cases and trims an email address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
