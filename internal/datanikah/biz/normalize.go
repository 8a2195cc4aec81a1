package biz

import (
	"strconv"
	"strings"
	"time"

	"github.com/kart-io/datanikah/internal/model"
)

// DateLayout is the stored form of every date field.
const DateLayout = "2006-01-02T15:04:05.000Z"

// column maps one spreadsheet header onto a record field.
type column struct {
	header string
	set    func(r *model.MarriageRecord, v string)
}

func text(field func(r *model.MarriageRecord) *string) func(*model.MarriageRecord, string) {
	return func(r *model.MarriageRecord, v string) { *field(r) = strings.TrimSpace(v) }
}

func date(field func(r *model.MarriageRecord) *string) func(*model.MarriageRecord, string) {
	return func(r *model.MarriageRecord, v string) { *field(r) = FormatDate(v) }
}

func age(field func(r *model.MarriageRecord) *int) func(*model.MarriageRecord, string) {
	return func(r *model.MarriageRecord, v string) { *field(r) = ParseAge(v) }
}

// columns is the fixed header table of the upload template, in template order.
// "Tempat Lagir Saksi" is spelled as in the official export.
var columns = []column{
	{"Provinsi", text(func(r *model.MarriageRecord) *string { return &r.Provinsi })},
	{"Kabupaten/Kota", text(func(r *model.MarriageRecord) *string { return &r.KabupatenKota })},
	{"Kode KUA", text(func(r *model.MarriageRecord) *string { return &r.KodeKUA })},
	{"Nama KUA", text(func(r *model.MarriageRecord) *string { return &r.NamaKUA })},
	{"No Seri Huruf", text(func(r *model.MarriageRecord) *string { return &r.NoSeriHuruf })},
	{"No Perforasi", text(func(r *model.MarriageRecord) *string { return &r.NoPerforasi })},
	{"No Pemeriksaan", text(func(r *model.MarriageRecord) *string { return &r.NoPemeriksaan })},
	{"No Aktanikah", text(func(r *model.MarriageRecord) *string { return &r.NoAktanikah })},
	{"No Aktanikah Lama", text(func(r *model.MarriageRecord) *string { return &r.NoAktanikahLama })},
	{"No Pendaftaran", text(func(r *model.MarriageRecord) *string { return &r.NoPendaftaran })},
	{"Tanggal Daftar", date(func(r *model.MarriageRecord) *string { return &r.TanggalDaftar })},

	{"NIK Suami", text(func(r *model.MarriageRecord) *string { return &r.Suami.NIK })},
	{"Nama Suami", text(func(r *model.MarriageRecord) *string { return &r.Suami.Nama })},
	{"Tempat Lahir Suami", text(func(r *model.MarriageRecord) *string { return &r.Suami.TempatLahir })},
	{"Tanggal Lahir Suami", date(func(r *model.MarriageRecord) *string { return &r.Suami.TanggalLahir })},
	{"Umur Suami", age(func(r *model.MarriageRecord) *int { return &r.Suami.Umur })},
	{"Warganegara Suami", text(func(r *model.MarriageRecord) *string { return &r.Suami.Warganegara })},
	{"Pendidikan Suami", text(func(r *model.MarriageRecord) *string { return &r.Suami.Pendidikan })},
	{"Pekerjaan Suami", text(func(r *model.MarriageRecord) *string { return &r.Suami.Pekerjaan })},
	{"Alamat Suami", text(func(r *model.MarriageRecord) *string { return &r.Suami.Alamat })},
	{"Status Suami", text(func(r *model.MarriageRecord) *string { return &r.Suami.Status })},
	{"Nama Ayah Suami", text(func(r *model.MarriageRecord) *string { return &r.Suami.NamaAyah })},
	{"Nama Ibu Suami", text(func(r *model.MarriageRecord) *string { return &r.Suami.NamaIbu })},

	{"NIK Istri", text(func(r *model.MarriageRecord) *string { return &r.Istri.NIK })},
	{"Nama Istri", text(func(r *model.MarriageRecord) *string { return &r.Istri.Nama })},
	{"Tempat Lahir Istri", text(func(r *model.MarriageRecord) *string { return &r.Istri.TempatLahir })},
	{"Tanggal Lahir Istri", date(func(r *model.MarriageRecord) *string { return &r.Istri.TanggalLahir })},
	{"Umur Istri", age(func(r *model.MarriageRecord) *int { return &r.Istri.Umur })},
	{"Warganegara Istri", text(func(r *model.MarriageRecord) *string { return &r.Istri.Warganegara })},
	{"Pendidikan Istri", text(func(r *model.MarriageRecord) *string { return &r.Istri.Pendidikan })},
	{"Pekerjaan Istri", text(func(r *model.MarriageRecord) *string { return &r.Istri.Pekerjaan })},
	{"Alamat Istri", text(func(r *model.MarriageRecord) *string { return &r.Istri.Alamat })},
	{"Status Istri", text(func(r *model.MarriageRecord) *string { return &r.Istri.Status })},
	{"Nama Ayah Istri", text(func(r *model.MarriageRecord) *string { return &r.Istri.NamaAyah })},
	{"Nama Ibu Istri", text(func(r *model.MarriageRecord) *string { return &r.Istri.NamaIbu })},

	{"Tanggal Akad", date(func(r *model.MarriageRecord) *string { return &r.TanggalAkad })},
	{"Jam Akad", text(func(r *model.MarriageRecord) *string { return &r.JamAkad })},
	{"Alamat Akad Nikah", text(func(r *model.MarriageRecord) *string { return &r.AlamatAkadNikah })},
	{"Nama Kelurahan", text(func(r *model.MarriageRecord) *string { return &r.NamaKelurahan })},

	{"Pencatatan Pengadilan Suami", text(func(r *model.MarriageRecord) *string { return &r.Suami.Pencatatan.Pengadilan })},
	{"Pencatatan Nomor Pengadilan Suami", text(func(r *model.MarriageRecord) *string { return &r.Suami.Pencatatan.NomorPengadilan })},
	{"Pencatatan Tanggal Pengadilan Suami", date(func(r *model.MarriageRecord) *string { return &r.Suami.Pencatatan.TanggalPengadilan })},
	{"Pencatatan Pengadilan Istri", text(func(r *model.MarriageRecord) *string { return &r.Istri.Pencatatan.Pengadilan })},
	{"Pencatatan Nomor Pengadilan Istri", text(func(r *model.MarriageRecord) *string { return &r.Istri.Pencatatan.NomorPengadilan })},
	{"Pencatatan Tanggal Pengadilan Istri", date(func(r *model.MarriageRecord) *string { return &r.Istri.Pencatatan.TanggalPengadilan })},

	{"NIP/NIK Penghulu Pemeriksa", text(func(r *model.MarriageRecord) *string { return &r.Penghulu.NIPPemeriksa })},
	{"Nama Penghulu Pemeriksa", text(func(r *model.MarriageRecord) *string { return &r.Penghulu.NamaPemeriksa })},
	{"NIP/NIK Penghulu Hadir", text(func(r *model.MarriageRecord) *string { return &r.Penghulu.NIPHadir })},
	{"Nama Penghulu Hadir", text(func(r *model.MarriageRecord) *string { return &r.Penghulu.NamaHadir })},
	{"Mas Kawin", text(func(r *model.MarriageRecord) *string { return &r.MasKawin })},
	{"No NTPN", text(func(r *model.MarriageRecord) *string { return &r.NoNTPN })},

	{"Status Wali", text(func(r *model.MarriageRecord) *string { return &r.Wali.Status })},
	{"Hubungan Wali", text(func(r *model.MarriageRecord) *string { return &r.Wali.Hubungan })},
	{"Sebab Menjadi Wali", text(func(r *model.MarriageRecord) *string { return &r.Wali.SebabMenjadiWali })},
	{"NIK Wali", text(func(r *model.MarriageRecord) *string { return &r.Wali.NIK })},
	{"Nama Lengkap Wali", text(func(r *model.MarriageRecord) *string { return &r.Wali.NamaLengkap })},
	{"Tempat Lahir Wali", text(func(r *model.MarriageRecord) *string { return &r.Wali.TempatLahir })},
	{"Tanggal Lahir Wali", date(func(r *model.MarriageRecord) *string { return &r.Wali.TanggalLahir })},
	{"Alamat Tinggal Wali", text(func(r *model.MarriageRecord) *string { return &r.Wali.AlamatTinggal })},
	{"Bin", text(func(r *model.MarriageRecord) *string { return &r.Wali.Bin })},
	{"Kewarganegaraan Wali", text(func(r *model.MarriageRecord) *string { return &r.Wali.Kewarganegaraan })},
	{"Agama Wali", text(func(r *model.MarriageRecord) *string { return &r.Wali.Agama })},
	{"Pekerjaan Wali", text(func(r *model.MarriageRecord) *string { return &r.Wali.Pekerjaan })},

	{"NIK Saksi Satu", text(func(r *model.MarriageRecord) *string { return &r.SaksiSatu.NIK })},
	{"Nama Saksi Satu", text(func(r *model.MarriageRecord) *string { return &r.SaksiSatu.Nama })},
	{"Tempat Lagir Saksi Satu", text(func(r *model.MarriageRecord) *string { return &r.SaksiSatu.TempatLahir })},
	{"Tanggal Lahir Saksi Satu", date(func(r *model.MarriageRecord) *string { return &r.SaksiSatu.TanggalLahir })},
	{"Agama Saksi Satu", text(func(r *model.MarriageRecord) *string { return &r.SaksiSatu.Agama })},
	{"Kewarganegaraan Saksi Satu", text(func(r *model.MarriageRecord) *string { return &r.SaksiSatu.Kewarganegaraan })},
	{"Pekerjaan Saksi Satu", text(func(r *model.MarriageRecord) *string { return &r.SaksiSatu.Pekerjaan })},
	{"Tempat Tinggal Saksi Satu", text(func(r *model.MarriageRecord) *string { return &r.SaksiSatu.TempatTinggal })},

	{"NIK Saksi Dua", text(func(r *model.MarriageRecord) *string { return &r.SaksiDua.NIK })},
	{"Nama Saksi Dua", text(func(r *model.MarriageRecord) *string { return &r.SaksiDua.Nama })},
	{"Tempat Lagir Saksi Dua", text(func(r *model.MarriageRecord) *string { return &r.SaksiDua.TempatLahir })},
	{"Tanggal Lahir Saksi Dua", date(func(r *model.MarriageRecord) *string { return &r.SaksiDua.TanggalLahir })},
	{"Agama Saksi Dua", text(func(r *model.MarriageRecord) *string { return &r.SaksiDua.Agama })},
	{"Kewarganegaraan Saksi Dua", text(func(r *model.MarriageRecord) *string { return &r.SaksiDua.Kewarganegaraan })},
	{"Pekerjaan Saksi Dua", text(func(r *model.MarriageRecord) *string { return &r.SaksiDua.Pekerjaan })},
	{"Tempat Tinggal Saksi Dua", text(func(r *model.MarriageRecord) *string { return &r.SaksiDua.TempatTinggal })},

	{"Tanggal Bayar", date(func(r *model.MarriageRecord) *string { return &r.TanggalBayar })},
	{"Nikah Di", text(func(r *model.MarriageRecord) *string { return &r.NikahDi })},
}

// Headers returns the upload template headers in order.
func Headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.header
	}
	return out
}

// NormalizeRow builds a record from a header → cell map.
// Unknown headers are ignored; missing ones yield zero values. It never fails.
func NormalizeRow(row map[string]string) *model.MarriageRecord {
	r := &model.MarriageRecord{}
	for _, c := range columns {
		c.set(r, row[c.header])
	}
	return r
}

// FormatDate converts DD-MM-YYYY to DateLayout at UTC midnight.
// Anything else, including two-digit years and impossible calendar dates,
// yields "".
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 || !isYear(parts[2]) {
		return ""
	}
	day, ok1 := leadingInt(parts[0])
	month, ok2 := leadingInt(parts[1])
	year, ok3 := leadingInt(parts[2])
	if !ok1 || !ok2 || !ok3 {
		return ""
	}
	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 || day > 31 {
		return ""
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseAge reads the leading integer of v, defaulting to 0.
func ParseAge(v string) int {
	n, ok := leadingInt(v)
	if !ok {
		return 0
	}
	return n
}

// leadingInt parses an optional sign followed by digits, ignoring any
// trailing text ("27 tahun" → 27). Reports false when no digit leads.
// isYear reports whether s holds exactly four digits.
func isYear(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	sign := 1
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return sign * n, true
}
