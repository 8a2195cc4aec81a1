package biz

import (
	"context"
	"time"

	"github.com/kart-io/logger"

	"github.com/kart-io/datanikah/internal/datanikah/store"
	"github.com/kart-io/datanikah/internal/model"
	"github.com/kart-io/datanikah/pkg/utils/errors"
)

// DefaultRecentLimit is the size of the recent uploads list.
const DefaultRecentLimit = 5

// RecentSnapshot is one emission of the recent uploads feed.
type RecentSnapshot struct {
	Records []*model.MarriageRecord
	Err     error
}

// RecentFeed lists the latest uploads, on demand or as a change stream.
type RecentFeed struct {
	records  store.RecordStore
	limit    int
	interval time.Duration
}

// NewRecentFeed creates a feed of the latest limit records polled every interval.
func NewRecentFeed(records store.RecordStore, limit int, interval time.Duration) *RecentFeed {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &RecentFeed{records: records, limit: limit, interval: interval}
}

// Poll returns the latest records by upload time. limit <= 0 uses the feed default.
func (f *RecentFeed) Poll(ctx context.Context, limit int) ([]*model.MarriageRecord, error) {
	if limit <= 0 || limit > MaxSearchLimit {
		limit = f.limit
	}
	records, err := f.records.Find(ctx, store.Query{
		SortBy: store.FieldCreatedAt,
		Desc:   true,
		Limit:  int64(limit),
	})
	if err != nil {
		logger.Errorw("recent records query failed", "error", err.Error())
		return nil, errors.ErrRecordQuery.WithCause(err)
	}
	return records, nil
}

// Subscribe emits a snapshot immediately and again whenever the list head
// changes. Query errors are emitted and polling continues. The channel is
// closed when ctx is done.
func (f *RecentFeed) Subscribe(ctx context.Context) <-chan RecentSnapshot {
	ch := make(chan RecentSnapshot, 1)

	go func() {
		defer close(ch)

		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()

		var last string
		first := true
		for {
			records, err := f.Poll(ctx, f.limit)
			if ctx.Err() != nil {
				return
			}

			head := signature(records)
			if err != nil || first || head != last {
				select {
				case ch <- RecentSnapshot{Records: records, Err: err}:
				case <-ctx.Done():
					return
				}
				first = false
				if err == nil {
					last = head
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch
}

// signature identifies the ordered list by record IDs.
func signature(records []*model.MarriageRecord) string {
	var b []byte
	for _, r := range records {
		b = append(b, r.IDHex()...)
		b = append(b, ',')
	}
	return string(b)
}
