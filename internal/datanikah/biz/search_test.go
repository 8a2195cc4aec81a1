package biz

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/datanikah/internal/datanikah/store"
	"github.com/kart-io/datanikah/internal/model"
	"github.com/kart-io/datanikah/pkg/utils/errors"
)

func TestRecordService_Search(t *testing.T) {
	rs := store.NewMemoryFactory().Records()
	seedRecords(t, rs,
		newRecord("AN-2024-001", "KUA A", "Ahmad Yusuf", "Fatimah", ""),
		newRecord("AN-2024-002", "KUA A", "Budi", "Ahmadina", ""),
		newRecord("BN-2023-001", "KUA B", "Ahmadi", "Sari", ""),
	)
	svc := NewRecordService(rs)

	tests := []struct {
		name string
		req  model.SearchRequest
		want []string
	}{
		{"默认按证书号", model.SearchRequest{Keyword: "an-2024"}, []string{"AN-2024-001", "AN-2024-002"}},
		{"按丈夫姓名", model.SearchRequest{Type: model.SearchByNamaSuami, Keyword: "ahmad"}, []string{"AN-2024-001", "BN-2023-001"}},
		{"按妻子姓名", model.SearchRequest{Type: model.SearchByNamaIstri, Keyword: "Ahmad"}, []string{"AN-2024-002"}},
		{"无匹配", model.SearchRequest{Type: model.SearchByNamaIstri, Keyword: "Zahra"}, nil},
		{"空关键词按上传倒序", model.SearchRequest{Limit: 2}, []string{"BN-2023-001", "AN-2024-002"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Search(context.Background(), &tt.req)
			require.NoError(t, err)

			var keys []string
			for _, r := range got {
				keys = append(keys, r.NoAktanikah)
			}
			assert.Equal(t, tt.want, keys)
		})
	}
}

func TestRecordService_SearchLimit(t *testing.T) {
	rs := store.NewMemoryFactory().Records()
	for i := 0; i < MaxSearchLimit+10; i++ {
		seedRecords(t, rs, newRecord(fmt.Sprintf("AN-%03d", i), "KUA A", "A", "B", ""))
	}
	svc := NewRecordService(rs)

	got, err := svc.Search(context.Background(), &model.SearchRequest{})
	require.NoError(t, err)
	assert.Len(t, got, DefaultSearchLimit)

	got, err = svc.Search(context.Background(), &model.SearchRequest{Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, got, MaxSearchLimit)
}

func TestRecordService_SearchErrors(t *testing.T) {
	_, err := NewRecordService(store.NewMemoryFactory().Records()).
		Search(context.Background(), &model.SearchRequest{Type: "nik"})
	assert.ErrorIs(t, err, errors.ErrSearchTypeInvalid)

	_, err = NewRecordService(failingRecords{}).
		Search(context.Background(), &model.SearchRequest{Keyword: "AN"})
	assert.ErrorIs(t, err, errors.ErrRecordQuery)
}
