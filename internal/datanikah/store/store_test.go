package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/kart-io/datanikah/internal/model"
)

func seed(t *testing.T, rs RecordStore, records ...*model.MarriageRecord) {
	t.Helper()
	for _, r := range records {
		require.NoError(t, rs.Insert(context.Background(), r))
	}
}

func rec(noAkta, kua, suami, istri, tanggal string) *model.MarriageRecord {
	return &model.MarriageRecord{
		NoAktanikah: noAkta,
		NamaKUA:     kua,
		Suami:       model.Party{Nama: suami},
		Istri:       model.Party{Nama: istri},
		TanggalAkad: tanggal,
	}
}

func TestPrefix_Bounds(t *testing.T) {
	filters := Prefix(FieldSearchNamaSuami, "ahmad")
	require.Len(t, filters, 2)
	assert.Equal(t, Filter{Field: FieldSearchNamaSuami, Op: OpGte, Value: "AHMAD"}, filters[0])
	assert.Equal(t, Filter{Field: FieldSearchNamaSuami, Op: OpLte, Value: "AHMAD" + PrefixSentinel}, filters[1])
}

func TestMemoryRecords_PrefixMatchesExactlyUppercasedPrefix(t *testing.T) {
	rs := NewMemoryFactory().Records()
	seed(t, rs,
		rec("AN-1", "KUA A", "Ahmad Fauzi", "Siti", ""),
		rec("AN-2", "KUA A", "ahmadi", "Rina", ""),
		rec("AN-3", "KUA A", "AHMAD", "Dewi", ""),
		rec("AN-4", "KUA A", "Ahma", "Lina", ""),
		rec("AN-5", "KUA A", "Budi Ahmad", "Ani", ""),
		rec("AN-6", "KUA A", "AHMAE", "Tia", ""),
	)

	got, err := rs.Find(context.Background(), Query{Filters: Prefix(FieldSearchNamaSuami, "Ahmad")})
	require.NoError(t, err)

	var names []string
	for _, r := range got {
		names = append(names, r.Suami.Nama)
	}
	assert.ElementsMatch(t, []string{"Ahmad Fauzi", "ahmadi", "AHMAD"}, names)
}

func TestMemoryRecords_SortAndLimit(t *testing.T) {
	rs := NewMemoryFactory().Records()
	seed(t, rs,
		rec("AN-1", "KUA Kota Selatan", "A", "B", ""),
		rec("AN-2", "KUA Kota Selatan", "C", "D", ""),
		rec("AN-3", "KUA Kota Selatan", "E", "F", ""),
	)

	got, err := rs.Find(context.Background(), Query{SortBy: FieldCreatedAt, Desc: true, Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "AN-3", got[0].NoAktanikah)
	assert.Equal(t, "AN-2", got[1].NoAktanikah)
}

func TestMemoryRecords_RangeAndCount(t *testing.T) {
	rs := NewMemoryFactory().Records()
	seed(t, rs,
		rec("AN-1", "K", "A", "B", "2023-12-31T00:00:00.000Z"),
		rec("AN-2", "K", "A", "B", "2024-01-01T00:00:00.000Z"),
		rec("AN-3", "K", "A", "B", "2024-12-31T00:00:00.000Z"),
		rec("AN-4", "K", "A", "B", "2025-01-01T00:00:00.000Z"),
		rec("AN-5", "K", "A", "B", ""),
	)

	n, err := rs.Count(context.Background(),
		Filter{Field: FieldTanggalAkad, Op: OpGte, Value: "2024-01-01"},
		Filter{Field: FieldTanggalAkad, Op: OpLt, Value: "2025-01-01"},
	)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	all, err := rs.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 5, all)
}

func TestMemoryRecords_FindByKey(t *testing.T) {
	rs := NewMemoryFactory().Records()
	r := rec("AN-2024-001", "KUA Kota Selatan", "Ahmad", "Siti", "")
	seed(t, rs, r)

	assert.False(t, r.ID.IsZero())
	assert.False(t, r.CreatedAt.IsZero())
	assert.Equal(t, r.CreatedAt, r.UpdatedAt)
	assert.Equal(t, "KUA KOTA SELATAN", r.Search.NamaKUA)

	got, err := rs.FindByKey(context.Background(), "AN-2024-001", "KUA Kota Selatan")
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	_, err = rs.FindByKey(context.Background(), "AN-2024-001", "KUA Kota Utara")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRecords_ReturnsCopies(t *testing.T) {
	rs := NewMemoryFactory().Records()
	seed(t, rs, rec("AN-1", "K", "Ahmad", "Siti", ""))

	got, err := rs.Find(context.Background(), Query{})
	require.NoError(t, err)
	got[0].NoAktanikah = "mutated"

	again, err := rs.Find(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, "AN-1", again[0].NoAktanikah)
}

func TestMemoryUsers(t *testing.T) {
	us := NewMemoryFactory().Users()
	ctx := context.Background()

	u := &model.User{Email: " Admin@KUA.go.id ", PasswordHash: "hash", Name: "Admin"}
	require.NoError(t, us.Create(ctx, u))
	assert.Equal(t, "admin@kua.go.id", u.Email)

	got, err := us.GetByEmail(ctx, "ADMIN@kua.go.id")
	require.NoError(t, err)
	assert.Equal(t, "Admin", got.Name)

	assert.ErrorIs(t, us.Create(ctx, &model.User{Email: "admin@kua.go.id"}), ErrDuplicate)

	_, err = us.GetByEmail(ctx, "other@kua.go.id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToBSON(t *testing.T) {
	filters := append(Prefix(FieldSearchNamaKUA, "kua"), Eq(FieldNamaKUA, "KUA A"))
	assert.Equal(t, bson.M{
		FieldSearchNamaKUA: bson.M{"$gte": "KUA", "$lte": "KUA" + PrefixSentinel},
		FieldNamaKUA:       "KUA A",
	}, toBSON(filters))
}

func TestLocalStatsCache(t *testing.T) {
	c := NewLocalStatsCache()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, 2024)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, &model.DashboardStats{Year: 2024, Total: 3}, 0))
	got, ok, err := c.Get(ctx, 2024)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, got.Total)

	require.NoError(t, c.Invalidate(ctx))
	_, ok, _ = c.Get(ctx, 2024)
	assert.False(t, ok)
}
