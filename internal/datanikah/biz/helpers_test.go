package biz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kart-io/datanikah/internal/datanikah/store"
	"github.com/kart-io/datanikah/internal/model"
)

var errStoreDown = errors.New("connection refused")

// failingRecords fails every call.
type failingRecords struct{}

func (failingRecords) Find(context.Context, store.Query) ([]*model.MarriageRecord, error) {
	return nil, errStoreDown
}

func (failingRecords) Count(context.Context, ...store.Filter) (int64, error) {
	return 0, errStoreDown
}

func (failingRecords) FindByKey(context.Context, string, string) (*model.MarriageRecord, error) {
	return nil, errStoreDown
}

func (failingRecords) Insert(context.Context, *model.MarriageRecord) error {
	return errStoreDown
}

// failingInsertFactory accepts lookups but rejects inserts after n successes.
type failingInsertFactory struct {
	store.Factory
	n int
}

func (f *failingInsertFactory) Records() store.RecordStore {
	return &limitedInsertRecords{RecordStore: f.Factory.Records(), left: &f.n}
}

type limitedInsertRecords struct {
	store.RecordStore
	left *int
}

func (r *limitedInsertRecords) Insert(ctx context.Context, m *model.MarriageRecord) error {
	if *r.left <= 0 {
		return errStoreDown
	}
	*r.left--
	return r.RecordStore.Insert(ctx, m)
}

func seedRecords(t *testing.T, rs store.RecordStore, records ...*model.MarriageRecord) {
	t.Helper()
	for _, r := range records {
		require.NoError(t, rs.Insert(context.Background(), r))
	}
}

func newRecord(noAkta, kua, suami, istri, tanggalAkad string) *model.MarriageRecord {
	return &model.MarriageRecord{
		NoAktanikah: noAkta,
		NamaKUA:     kua,
		Suami:       model.Party{Nama: suami},
		Istri:       model.Party{Nama: istri},
		TanggalAkad: FormatDate(tanggalAkad),
	}
}
