package biz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"标准格式", "15-03-2024", "2024-03-15T00:00:00.000Z"},
		{"单位数日月", "1-2-2024", "2024-02-01T00:00:00.000Z"},
		{"首尾空白", "  31-12-2023 ", "2023-12-31T00:00:00.000Z"},
		{"闰日", "29-02-2024", "2024-02-29T00:00:00.000Z"},
		{"空字符串", "", ""},
		{"非日期文本", "bukan tanggal", ""},
		{"斜线分隔", "15/03/2024", ""},
		{"两段", "15-03", ""},
		{"月份越界", "15-13-2024", ""},
		{"日期溢出", "31-02-2024", ""},
		{"非闰年二月", "29-02-2023", ""},
		{"零日", "00-01-2024", ""},
		{"两位年份", "03-05-24", ""},
		{"年份带后缀", "15-03-2024x", ""},
		{"五位年份", "15-03-02024", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, FormatDate(tt.input))
			})
		})
	}
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"整数", "27", 27},
		{"带单位", "27 tahun", 27},
		{"空白", " 30 ", 30},
		{"空字符串", "", 0},
		{"非数字", "dua puluh", 0},
		{"小数截断", "18.9", 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAge(tt.input))
		})
	}
}

func TestNormalizeRow(t *testing.T) {
	r := NormalizeRow(map[string]string{
		"No Aktanikah":            " AN-2024-001 ",
		"Nama KUA":                "KUA Kota Selatan",
		"Nama Suami":              "Ahmad Yusuf",
		"Umur Suami":              "27",
		"Nama Istri":              "Fatimah",
		"Umur Istri":              "",
		"Tanggal Akad":            "15-03-2024",
		"Tanggal Lahir Suami":     "salah",
		"Tempat Lagir Saksi Satu": "Gorontalo",
		"Nama Lengkap Wali":       "Abdullah",
		"Kolom Tidak Dikenal":     "x",
	})

	assert.Equal(t, "AN-2024-001", r.NoAktanikah)
	assert.Equal(t, "KUA Kota Selatan", r.NamaKUA)
	assert.Equal(t, "Ahmad Yusuf", r.Suami.Nama)
	assert.Equal(t, 27, r.Suami.Umur)
	assert.Equal(t, 0, r.Istri.Umur)
	assert.Equal(t, "2024-03-15T00:00:00.000Z", r.TanggalAkad)
	assert.Empty(t, r.Suami.TanggalLahir)
	assert.Equal(t, "Gorontalo", r.SaksiSatu.TempatLahir)
	assert.Equal(t, "Abdullah", r.Wali.NamaLengkap)
	// 缺失列为零值
	assert.Empty(t, r.Provinsi)
	assert.Empty(t, r.NikahDi)
}

func TestHeaders(t *testing.T) {
	headers := Headers()
	assert.Len(t, headers, len(columns))
	assert.Equal(t, "Provinsi", headers[0])
	assert.Equal(t, "Nikah Di", headers[len(headers)-1])
	assert.Contains(t, headers, "No Aktanikah")
	assert.Contains(t, headers, "Tempat Lagir Saksi Dua")

	seen := make(map[string]bool)
	for _, h := range headers {
		assert.False(t, seen[h], "duplicate header %q", h)
		seen[h] = true
	}
}
