package biz

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/datanikah/internal/datanikah/store"
	"github.com/kart-io/datanikah/internal/model"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, store.RecordStore) {
	t.Helper()
	rs := store.NewMemoryFactory().Records()
	return NewDispatcher(rs, "Kota Gorontalo"), rs
}

func TestDispatch_NameMergesHusbandAndWife(t *testing.T) {
	d, rs := newTestDispatcher(t)
	seedRecords(t, rs,
		newRecord("AN-1", "KUA Kota Selatan", "Ahmad Yusuf", "Fatimah", "01-02-2024"),
		newRecord("AN-2", "KUA Kota Selatan", "Rahmat", "ahmadina", "02-02-2024"),
		newRecord("AN-3", "KUA Kota Selatan", "Budi", "Sari", "03-02-2024"),
	)

	reply := d.Dispatch(context.Background(), "Cari nama Ahmad")

	assert.Equal(t, IntentName, reply.Intent)
	require.Len(t, reply.Records, 2)
	assert.Equal(t, fmt.Sprintf(nameFound, 2, "Ahmad"), reply.Text)
}

func TestDispatch_NameDeduplicatesSameRecord(t *testing.T) {
	d, rs := newTestDispatcher(t)
	seedRecords(t, rs, newRecord("AN-1", "KUA A", "Ahmad", "Ahmadah", "01-02-2024"))

	reply := d.Dispatch(context.Background(), "cari data nikah atas nama ahmad")
	assert.Len(t, reply.Records, 1)
}

func TestDispatch_NameCapsEachSide(t *testing.T) {
	d, rs := newTestDispatcher(t)
	for i := 0; i < 15; i++ {
		seedRecords(t, rs, newRecord(fmt.Sprintf("AN-%02d", i), "KUA A", "Ahmad", "Ahmadah", ""))
	}
	for i := 0; i < 15; i++ {
		seedRecords(t, rs, newRecord(fmt.Sprintf("BN-%02d", i), "KUA A", "Zaki", "Ahmadah", ""))
	}

	reply := d.Dispatch(context.Background(), "nama Ahmad")
	assert.LessOrEqual(t, len(reply.Records), 2*nameLimit)
	assert.GreaterOrEqual(t, len(reply.Records), nameLimit)
}

func TestDispatch_YearStatistics(t *testing.T) {
	d, rs := newTestDispatcher(t)
	for m := 1; m <= 12; m++ {
		seedRecords(t, rs, newRecord(fmt.Sprintf("AN-%02d", m), "KUA A", "Suami", "Istri", fmt.Sprintf("15-%02d-2024", m)))
	}
	seedRecords(t, rs,
		newRecord("AN-2023", "KUA A", "Lama", "Lama", "31-12-2023"),
		newRecord("AN-2025", "KUA A", "Baru", "Baru", "01-01-2025"),
	)

	reply := d.Dispatch(context.Background(), "Berapa jumlah pernikahan tahun 2024")

	assert.Equal(t, IntentYear, reply.Intent)
	require.NotNil(t, reply.Stats)
	assert.Equal(t, int64(12), reply.Stats.Total)
	assert.Equal(t, int64(1), reply.Stats.PerMonth)
	assert.InDelta(t, 0.03, reply.Stats.PerDay, 0.001)
	assert.Contains(t, reply.Text, "Total Pernikahan: 12 pasangan")
	assert.Contains(t, reply.Text, "Rata-rata per bulan: 1 pasangan")
	assert.Contains(t, reply.Text, "Kota Gorontalo")
}

func TestDispatch_YearIncludesLastDay(t *testing.T) {
	d, rs := newTestDispatcher(t)
	seedRecords(t, rs, newRecord("AN-1", "KUA A", "A", "B", "31-12-2024"))

	reply := d.Dispatch(context.Background(), "statistik 2024")
	require.NotNil(t, reply.Stats)
	assert.Equal(t, int64(1), reply.Stats.Total)
}

func TestDispatch_YearWithoutData(t *testing.T) {
	d, _ := newTestDispatcher(t)

	reply := d.Dispatch(context.Background(), "statistik tahun 2019")
	assert.Equal(t, fmt.Sprintf(yearNotFound, 2019), reply.Text)
}

func TestDispatch_Certificate(t *testing.T) {
	d, rs := newTestDispatcher(t)
	seedRecords(t, rs,
		newRecord("AN-2024-001", "KUA Kota Selatan", "A", "B", ""),
		newRecord("AN-2023-009", "KUA Kota Selatan", "C", "D", ""),
	)

	reply := d.Dispatch(context.Background(), "Cari nomor akta an-2024-001")

	assert.Equal(t, IntentCertificate, reply.Intent)
	require.Len(t, reply.Records, 1)
	assert.Equal(t, "AN-2024-001", reply.Records[0].NoAktanikah)
}

func TestDispatch_Office(t *testing.T) {
	d, rs := newTestDispatcher(t)
	seedRecords(t, rs,
		newRecord("AN-1", "KUA Kota Selatan", "A", "B", ""),
		newRecord("AN-2", "KUA Kota Selatan", "C", "D", ""),
		newRecord("AN-3", "KUA Kota Utara", "E", "F", ""),
	)

	reply := d.Dispatch(context.Background(), "Data KUA Kota Selatan")

	assert.Equal(t, IntentOffice, reply.Intent)
	require.Len(t, reply.Records, 2)
	// 按上传时间倒序
	assert.Equal(t, "AN-2", reply.Records[0].NoAktanikah)
}

func TestDispatch_Date(t *testing.T) {
	d, rs := newTestDispatcher(t)
	seedRecords(t, rs,
		newRecord("AN-1", "KUA A", "A", "B", "15-03-2024"),
		newRecord("AN-2", "KUA A", "C", "D", "16-03-2024"),
	)

	tests := []struct {
		name    string
		message string
	}{
		{"横线格式", "Data nikah tanggal 15-03-2024"},
		{"斜线格式", "tgl 15/03/2024"},
		{"ISO 格式", "tanggal 2024-03-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := d.Dispatch(context.Background(), tt.message)
			assert.Equal(t, IntentDate, reply.Intent)
			require.Len(t, reply.Records, 1)
			assert.Equal(t, "AN-1", reply.Records[0].NoAktanikah)
		})
	}
}

func TestDispatch_NotFoundTexts(t *testing.T) {
	d, _ := newTestDispatcher(t)

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"姓名", "cari nama Zulkifli", fmt.Sprintf(nameNotFound, "Zulkifli")},
		{"证书", "nomor akta XX-1", fmt.Sprintf(certificateMissing, "XX-1")},
		{"办事处", "data kua Limboto", fmt.Sprintf(officeNotFound, "Limboto")},
		{"日期", "tanggal 01-01-2024", fmt.Sprintf(dateNotFound, "01-01-2024")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := d.Dispatch(context.Background(), tt.message)
			assert.Equal(t, tt.want, reply.Text)
			assert.Empty(t, reply.Records)
		})
	}
}

func TestDispatch_PromptsWhenNothingCaptured(t *testing.T) {
	d, _ := newTestDispatcher(t)

	tests := []struct {
		name    string
		message string
		intent  string
		want    string
	}{
		{"缺少姓名", "Cari nama", IntentName, promptName},
		{"缺少证书号", "cek akta", IntentCertificate, promptCertificate},
		{"缺少年份", "statistik tahun ini", IntentYear, promptYear},
		{"缺少办事处", "KUA", IntentOffice, promptOffice},
		{"日期无效", "tanggal 31-02-2024", IntentDate, promptDate},
		// 关键词命中后不再尝试后续意图
		{"不回退到后续意图", "nama 2024", IntentName, fmt.Sprintf(nameNotFound, "2024")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := d.Dispatch(context.Background(), tt.message)
			assert.Equal(t, tt.intent, reply.Intent)
			assert.Equal(t, tt.want, reply.Text)
		})
	}
}

func TestDispatch_Fallback(t *testing.T) {
	d, _ := newTestDispatcher(t)

	for _, msg := range []string{"asdkjasd", "halo", ""} {
		reply := d.Dispatch(context.Background(), msg)
		assert.Equal(t, IntentNone, reply.Intent)
		assert.Equal(t, FallbackText, reply.Text)
	}
}

func TestDispatch_KeywordsMatchWordStart(t *testing.T) {
	d, rs := newTestDispatcher(t)
	seedRecords(t, rs, newRecord("AN-1", "KUA A", "Ahmad", "Fatimah", "01-02-2024"))

	tests := []struct {
		name    string
		message string
		intent  string
	}{
		{"词中的 akta 不命中", "Fakta pernikahan 2024", IntentNone},
		{"mencari 不触发 cari", "mencari sesuatu", IntentNone},
		{"词首前缀仍命中", "aktanikah AN-1", IntentCertificate},
		{"标点分隔", "(akta) AN-1", IntentCertificate},
		{"多词关键词", "Kantor Urusan Agama A", IntentOffice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := d.Dispatch(context.Background(), tt.message)
			assert.Equal(t, tt.intent, reply.Intent)
		})
	}
}

func TestDispatch_CariFallsBackToName(t *testing.T) {
	d, rs := newTestDispatcher(t)
	seedRecords(t, rs,
		newRecord("AN-1", "KUA Kota Selatan", "Ahmad Yusuf", "Fatimah", "01-02-2024"),
		newRecord("AN-2", "KUA Kota Selatan", "Budi", "Sari", "02-02-2024"),
	)

	reply := d.Dispatch(context.Background(), "Cari Ahmad")
	assert.Equal(t, IntentName, reply.Intent)
	require.Len(t, reply.Records, 1)
	assert.Equal(t, fmt.Sprintf(nameFound, 1, "Ahmad"), reply.Text)

	reply = d.Dispatch(context.Background(), "cari data nikah Budi")
	require.Len(t, reply.Records, 1)
	assert.Equal(t, "AN-2", reply.Records[0].NoAktanikah)

	// 其他关键词优先
	reply = d.Dispatch(context.Background(), "cari akta AN-2")
	assert.Equal(t, IntentCertificate, reply.Intent)

	reply = d.Dispatch(context.Background(), "cari")
	assert.Equal(t, IntentName, reply.Intent)
	assert.Equal(t, promptName, reply.Text)
}

func TestDispatch_NameStopsBeforeQualifier(t *testing.T) {
	d, rs := newTestDispatcher(t)
	seedRecords(t, rs,
		newRecord("AN-1", "KUA Kota Selatan", "Ahmad Dini", "Fatimah", "01-02-2024"),
	)

	tests := []struct {
		name    string
		message string
		param   string
	}{
		{"地点", "cari nama Ahmad di KUA Kota Selatan", "Ahmad"},
		{"年份", "nama Ahmad tahun 2024", "Ahmad"},
		{"日期", "istri Fatimah tanggal 01-02-2024", "Fatimah"},
		{"cari 回退", "cari Ahmad tahun 2024", "Ahmad"},
		{"名字中含 di", "nama Ahmad Dini", "Ahmad Dini"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := d.Dispatch(context.Background(), tt.message)
			assert.Equal(t, IntentName, reply.Intent)
			require.Len(t, reply.Records, 1)
			assert.Equal(t, fmt.Sprintf(nameFound, 1, tt.param), reply.Text)
		})
	}
}

func TestDispatch_StoreErrorApologizes(t *testing.T) {
	d := NewDispatcher(failingRecords{}, "")

	for _, msg := range []string{"cari nama Ahmad", "akta AN-1", "tahun 2024", "kua Selatan", "tanggal 01-01-2024"} {
		reply := d.Dispatch(context.Background(), msg)
		assert.Equal(t, ErrorText, reply.Text, msg)
		assert.Empty(t, reply.Records)
	}
}

func TestMergeUnique(t *testing.T) {
	rs := store.NewMemoryFactory().Records()
	a := newRecord("AN-1", "KUA A", "A", "B", "")
	b := newRecord("AN-2", "KUA A", "C", "D", "")
	seedRecords(t, rs, a, b)

	got := mergeUnique([]*model.MarriageRecord{a, b}, []*model.MarriageRecord{b}, nil)
	require.Len(t, got, 2)
	assert.Equal(t, "AN-1", got[0].NoAktanikah)
	assert.Equal(t, "AN-2", got[1].NoAktanikah)
}
