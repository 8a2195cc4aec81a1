// Package model defines the persisted and API-facing data types.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MarriageRecord is one registered marriage.
// Uniqueness is defined by (NoAktanikah, NamaKUA).
type MarriageRecord struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// 登记机构
	Provinsi      string `bson:"provinsi" json:"provinsi"`
	KabupatenKota string `bson:"kabupatenKota" json:"kabupatenKota"`
	KodeKUA       string `bson:"kodeKUA" json:"kodeKUA"`
	NamaKUA       string `bson:"namaKUA" json:"namaKUA"`

	// 证书编号
	NoSeriHuruf     string `bson:"noSeriHuruf" json:"noSeriHuruf"`
	NoPerforasi     string `bson:"noPerforasi" json:"noPerforasi"`
	NoPemeriksaan   string `bson:"noPemeriksaan" json:"noPemeriksaan"`
	NoAktanikah     string `bson:"noAktanikah" json:"noAktanikah"`
	NoAktanikahLama string `bson:"noAktanikahLama" json:"noAktanikahLama"`
	NoPendaftaran   string `bson:"noPendaftaran" json:"noPendaftaran"`

	TanggalDaftar   string `bson:"tanggalDaftar" json:"tanggalDaftar"`
	TanggalAkad     string `bson:"tanggalAkad" json:"tanggalAkad"`
	JamAkad         string `bson:"jamAkad" json:"jamAkad"`
	AlamatAkadNikah string `bson:"alamatAkadNikah" json:"alamatAkadNikah"`
	NamaKelurahan   string `bson:"namaKelurahan" json:"namaKelurahan"`

	Suami Party `bson:"suami" json:"suami"`
	Istri Party `bson:"istri" json:"istri"`

	Penghulu Officiants `bson:"penghulu" json:"penghulu"`

	MasKawin string `bson:"masKawin" json:"masKawin"`
	NoNTPN   string `bson:"noNTPN" json:"noNTPN"`

	Wali      Guardian `bson:"wali" json:"wali"`
	SaksiSatu Witness  `bson:"saksiSatu" json:"saksiSatu"`
	SaksiDua  Witness  `bson:"saksiDua" json:"saksiDua"`

	TanggalBayar string `bson:"tanggalBayar" json:"tanggalBayar"`
	NikahDi      string `bson:"nikahDi" json:"nikahDi"`

	// Search holds upper-cased copies of the prefix-searchable fields.
	Search SearchKeys `bson:"search" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Party is the husband or the wife.
type Party struct {
	NIK          string      `bson:"nik" json:"nik"`
	Nama         string      `bson:"nama" json:"nama"`
	TempatLahir  string      `bson:"tempatLahir" json:"tempatLahir"`
	TanggalLahir string      `bson:"tanggalLahir" json:"tanggalLahir"`
	Umur         int         `bson:"umur" json:"umur"`
	Warganegara  string      `bson:"warganegara" json:"warganegara"`
	Pendidikan   string      `bson:"pendidikan" json:"pendidikan"`
	Pekerjaan    string      `bson:"pekerjaan" json:"pekerjaan"`
	Alamat       string      `bson:"alamat" json:"alamat"`
	Status       string      `bson:"status" json:"status"`
	NamaAyah     string      `bson:"namaAyah" json:"namaAyah"`
	NamaIbu      string      `bson:"namaIbu" json:"namaIbu"`
	Pencatatan   CourtRecord `bson:"pencatatan" json:"pencatatan"`
}

// CourtRecord is a party's court registration, present for remarriages.
type CourtRecord struct {
	Pengadilan        string `bson:"pengadilan" json:"pengadilan"`
	NomorPengadilan   string `bson:"nomorPengadilan" json:"nomorPengadilan"`
	TanggalPengadilan string `bson:"tanggalPengadilan" json:"tanggalPengadilan"`
}

// Officiants are the examining and attending penghulu.
type Officiants struct {
	NIPPemeriksa  string `bson:"nipPemeriksa" json:"nipPemeriksa"`
	NamaPemeriksa string `bson:"namaPemeriksa" json:"namaPemeriksa"`
	NIPHadir      string `bson:"nipHadir" json:"nipHadir"`
	NamaHadir     string `bson:"namaHadir" json:"namaHadir"`
}

// Guardian is the bride's wali.
type Guardian struct {
	Status           string `bson:"status" json:"status"`
	Hubungan         string `bson:"hubungan" json:"hubungan"`
	SebabMenjadiWali string `bson:"sebabMenjadiWali" json:"sebabMenjadiWali"`
	NIK              string `bson:"nik" json:"nik"`
	NamaLengkap      string `bson:"namaLengkap" json:"namaLengkap"`
	TempatLahir      string `bson:"tempatLahir" json:"tempatLahir"`
	TanggalLahir     string `bson:"tanggalLahir" json:"tanggalLahir"`
	AlamatTinggal    string `bson:"alamatTinggal" json:"alamatTinggal"`
	Bin              string `bson:"bin" json:"bin"`
	Kewarganegaraan  string `bson:"kewarganegaraan" json:"kewarganegaraan"`
	Agama            string `bson:"agama" json:"agama"`
	Pekerjaan        string `bson:"pekerjaan" json:"pekerjaan"`
}

// Witness is one of the two saksi.
type Witness struct {
	NIK             string `bson:"nik" json:"nik"`
	Nama            string `bson:"nama" json:"nama"`
	TempatLahir     string `bson:"tempatLahir" json:"tempatLahir"`
	TanggalLahir    string `bson:"tanggalLahir" json:"tanggalLahir"`
	Agama           string `bson:"agama" json:"agama"`
	Kewarganegaraan string `bson:"kewarganegaraan" json:"kewarganegaraan"`
	Pekerjaan       string `bson:"pekerjaan" json:"pekerjaan"`
	TempatTinggal   string `bson:"tempatTinggal" json:"tempatTinggal"`
}

// SearchKeys are maintained by the store on insert.
type SearchKeys struct {
	NoAktanikah string `bson:"noAktanikah"`
	NamaSuami   string `bson:"namaSuami"`
	NamaIstri   string `bson:"namaIstri"`
	NamaKUA     string `bson:"namaKUA"`
}

// IDHex returns the hex form of the record ID, or "" when unset.
func (r *MarriageRecord) IDHex() string {
	if r.ID.IsZero() {
		return ""
	}
	return r.ID.Hex()
}

// Search types accepted by the record search.
const (
	SearchByNoAktanikah = "no-aktanikah"
	SearchByNamaSuami   = "nama-suami"
	SearchByNamaIstri   = "nama-istri"
)

// SearchRequest is the query of GET /v1/records/search.
type SearchRequest struct {
	Type    string `form:"type" json:"type" validate:"omitempty,oneof=no-aktanikah nama-suami nama-istri"`
	Keyword string `form:"keyword" json:"keyword" validate:"max=100"`
	Limit   int    `form:"limit" json:"limit" validate:"gte=0,lte=200"`
}
