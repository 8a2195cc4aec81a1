package biz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/datanikah/internal/datanikah/store"
	"github.com/kart-io/datanikah/internal/model"
	"github.com/kart-io/datanikah/pkg/utils/errors"
)

func TestAgeBucket(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{0, UnknownLabel},
		{-3, UnknownLabel},
		{16, "<19"},
		{18, "<19"},
		{19, "19-25"},
		{25, "19-25"},
		{26, "26-30"},
		{30, "26-30"},
		{35, "31-35"},
		{40, "36-40"},
		{41, ">40"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AgeBucket(tt.age), "age %d", tt.age)
	}
}

func withAges(r *model.MarriageRecord, suami, istri int, nikahDi string) *model.MarriageRecord {
	r.Suami.Umur = suami
	r.Istri.Umur = istri
	r.NikahDi = nikahDi
	return r
}

func TestBuildStats(t *testing.T) {
	records := []*model.MarriageRecord{
		withAges(newRecord("AN-1", "KUA Kota Selatan", "A", "B", "10-01-2024"), 27, 17, "KUA"),
		withAges(newRecord("AN-2", "KUA Kota Selatan", "C", "D", "11-01-2024"), 18, 22, "Luar KUA"),
		withAges(newRecord("AN-3", "KUA Kota Utara", "E", "F", "05-03-2024"), 45, 0, "KUA"),
		withAges(newRecord("AN-4", "", "G", "H", "bad"), 30, 16, ""),
	}

	stats := BuildStats(2024, records)

	assert.Equal(t, 2024, stats.Year)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, []model.Bucket{
		{Label: "KUA Kota Selatan", Count: 2},
		{Label: "KUA Kota Utara", Count: 1},
		{Label: UnknownLabel, Count: 1},
	}, stats.Districts)
	assert.Equal(t, []model.Bucket{
		{Label: "KUA", Count: 2},
		{Label: "Luar KUA", Count: 1},
		{Label: UnknownLabel, Count: 1},
	}, stats.Locations)
	assert.Equal(t, []model.Bucket{
		{Label: "<19", Count: 1},
		{Label: "26-30", Count: 2},
		{Label: ">40", Count: 1},
	}, stats.HusbandAges)
	// 妻子年龄与丈夫使用同一分组
	assert.Equal(t, []model.Bucket{
		{Label: "<19", Count: 2},
		{Label: "19-25", Count: 1},
		{Label: UnknownLabel, Count: 1},
	}, stats.WifeAges)

	require.Len(t, stats.UnderagePerMonth, 12)
	assert.Equal(t, model.Bucket{Label: "Jan", Count: 2}, stats.UnderagePerMonth[0])
	assert.Equal(t, model.Bucket{Label: "Mar", Count: 0}, stats.UnderagePerMonth[2])
	assert.Equal(t, "Des", stats.UnderagePerMonth[11].Label)
}

func newTestDashboard(rs store.RecordStore, cache store.StatsCache) *DashboardService {
	svc := NewDashboardService(rs, cache, time.Minute)
	svc.now = func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestDashboardService_Years(t *testing.T) {
	years := newTestDashboard(store.NewMemoryFactory().Records(), nil).Years()
	require.Len(t, years, 16)
	assert.Equal(t, 2025, years[0])
	assert.Equal(t, FirstYear, years[len(years)-1])
}

func TestDashboardService_Stats(t *testing.T) {
	ctx := context.Background()
	rs := store.NewMemoryFactory().Records()
	seedRecords(t, rs,
		newRecord("AN-1", "KUA A", "A", "B", "01-01-2024"),
		newRecord("AN-2", "KUA A", "C", "D", "31-12-2024"),
		newRecord("AN-3", "KUA A", "E", "F", "01-01-2025"),
	)
	cache := store.NewLocalStatsCache()
	svc := newTestDashboard(rs, cache)

	stats, err := svc.Stats(ctx, 2024)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)

	cached, ok, err := cache.Get(ctx, 2024)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, stats, cached)

	// 命中缓存时不再访问存储
	svc.records = failingRecords{}
	again, err := svc.Stats(ctx, 2024)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Total)
}

func TestDashboardService_StatsErrors(t *testing.T) {
	svc := newTestDashboard(failingRecords{}, nil)

	tests := []struct {
		name string
		year int
		want error
	}{
		{"早于起始年份", 2009, errors.ErrYearOutOfRange},
		{"晚于当前年份", 2026, errors.ErrYearOutOfRange},
		{"存储错误", 2024, errors.ErrRecordQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Stats(context.Background(), tt.year)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
