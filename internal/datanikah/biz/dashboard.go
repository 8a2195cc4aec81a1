package biz

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kart-io/logger"

	"github.com/kart-io/datanikah/internal/datanikah/store"
	"github.com/kart-io/datanikah/internal/model"
	"github.com/kart-io/datanikah/pkg/utils/errors"
)

// FirstYear is the earliest year offered by the dashboard.
const FirstYear = 2010

// UnknownLabel labels records with an empty category or unknown age.
const UnknownLabel = "Tidak diketahui"

// MonthLabels are the underage chart categories.
var MonthLabels = []string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Ags", "Sep", "Okt", "Nov", "Des"}

// AgeLabels are the age chart categories in display order.
var AgeLabels = []string{"<19", "19-25", "26-30", "31-35", "36-40", ">40", UnknownLabel}

// DashboardService aggregates one year of records for the charts.
type DashboardService struct {
	records store.RecordStore
	cache   store.StatsCache
	ttl     time.Duration
	now     func() time.Time
}

// NewDashboardService creates a new DashboardService. cache may be nil.
func NewDashboardService(records store.RecordStore, cache store.StatsCache, ttl time.Duration) *DashboardService {
	return &DashboardService{
		records: records,
		cache:   cache,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Years lists the selectable years, current year first.
func (s *DashboardService) Years() []int {
	current := s.now().Year()
	years := make([]int, 0, current-FirstYear+1)
	for y := current; y >= FirstYear; y-- {
		years = append(years, y)
	}
	return years
}

// Stats returns the aggregates of year, served from cache when possible.
func (s *DashboardService) Stats(ctx context.Context, year int) (*model.DashboardStats, error) {
	if year < FirstYear || year > s.now().Year() {
		return nil, errors.ErrYearOutOfRange.WithMessagef("year %d is outside %d..%d", year, FirstYear, s.now().Year())
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, year)
		if err != nil {
			// 缓存不可用时直接查询
			logger.Warnw("dashboard cache read failed", "year", year, "error", err.Error())
		} else if ok {
			return cached, nil
		}
	}

	records, err := s.records.Find(ctx, store.Query{Filters: yearRange(year)})
	if err != nil {
		logger.Errorw("dashboard query failed", "year", year, "error", err.Error())
		return nil, errors.ErrRecordQuery.WithCause(err)
	}

	stats := BuildStats(year, records)

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats, s.ttl); err != nil {
			logger.Warnw("dashboard cache write failed", "year", year, "error", err.Error())
		}
	}
	return stats, nil
}

// BuildStats aggregates records into the chart series. Husband and wife
// ages go through the same AgeBucket lookup.
func BuildStats(year int, records []*model.MarriageRecord) *model.DashboardStats {
	districts := make(map[string]int)
	locations := make(map[string]int)
	husbands := make(map[string]int)
	wives := make(map[string]int)
	underage := make([]int, len(MonthLabels))

	for _, r := range records {
		districts[labelOrUnknown(r.NamaKUA)]++
		locations[labelOrUnknown(r.NikahDi)]++
		husbands[AgeBucket(r.Suami.Umur)]++
		wives[AgeBucket(r.Istri.Umur)]++

		if isUnderage(r.Suami.Umur) || isUnderage(r.Istri.Umur) {
			if m, ok := monthOf(r.TanggalAkad); ok {
				underage[m]++
			}
		}
	}

	months := make([]model.Bucket, len(MonthLabels))
	for i, label := range MonthLabels {
		months[i] = model.Bucket{Label: label, Count: underage[i]}
	}

	return &model.DashboardStats{
		Year:             year,
		Total:            len(records),
		Districts:        byCount(districts),
		Locations:        byCount(locations),
		HusbandAges:      ageSeries(husbands),
		WifeAges:         ageSeries(wives),
		UnderagePerMonth: months,
	}
}

// AgeBucket maps an age to its chart label. Zero means the age was unknown.
func AgeBucket(age int) string {
	switch {
	case age <= 0:
		return UnknownLabel
	case age < 19:
		return "<19"
	case age <= 25:
		return "19-25"
	case age <= 30:
		return "26-30"
	case age <= 35:
		return "31-35"
	case age <= 40:
		return "36-40"
	default:
		return ">40"
	}
}

func isUnderage(age int) bool {
	return age > 0 && age < 19
}

// monthOf returns the zero-based month of a stored date.
func monthOf(date string) (int, bool) {
	if len(date) < 7 {
		return 0, false
	}
	m, err := strconv.Atoi(date[5:7])
	if err != nil || m < 1 || m > 12 {
		return 0, false
	}
	return m - 1, true
}

func labelOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return UnknownLabel
	}
	return s
}

// byCount orders buckets by count descending, then label.
func byCount(counts map[string]int) []model.Bucket {
	out := make([]model.Bucket, 0, len(counts))
	for label, n := range counts {
		out = append(out, model.Bucket{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// ageSeries keeps AgeLabels order and drops empty buckets.
func ageSeries(counts map[string]int) []model.Bucket {
	out := make([]model.Bucket, 0, len(counts))
	for _, label := range AgeLabels {
		if n := counts[label]; n > 0 {
			out = append(out, model.Bucket{Label: label, Count: n})
		}
	}
	return out
}
