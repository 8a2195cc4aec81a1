package biz

import "fmt"

// Assistant texts. The assistant speaks Indonesian regardless of client locale.
const (
	FallbackText = "Maaf, saya tidak memahami pertanyaan Anda. Silakan coba dengan kata kunci seperti:\n" +
		"• \"Cari nama [nama]\"\n" +
		"• \"Nomor akta [nomor]\"\n" +
		"• \"Statistik tahun [tahun]\"\n" +
		"• \"Data KUA [nama KUA]\"\n" +
		"• \"Tanggal [DD-MM-YYYY]\""

	ErrorText = "Maaf, terjadi kesalahan saat memproses permintaan Anda. Silakan coba lagi."

	promptName        = "Silakan sebutkan nama yang ingin dicari. Contoh: \"Cari data nikah atas nama Ahmad\""
	promptCertificate = "Silakan sebutkan nomor akta yang ingin dicari. Contoh: \"Cari nomor akta AN-2024-001\""
	promptYear        = "Silakan sebutkan tahun yang ingin dicari. Contoh: \"Berapa jumlah pernikahan tahun 2024\""
	promptOffice      = "Silakan sebutkan nama KUA yang ingin dicari. Contoh: \"Data KUA Kota Selatan\""
	promptDate        = "Silakan sebutkan tanggal akad dengan format DD-MM-YYYY. Contoh: \"Data nikah tanggal 15-03-2024\""

	nameFound          = "Ditemukan %d data pernikahan dengan nama \"%s\":"
	nameNotFound       = "Maaf, tidak ditemukan data pernikahan dengan nama \"%s\". Pastikan nama yang Anda masukkan sudah benar."
	certificateFound   = "Ditemukan %d data dengan nomor akta \"%s\":"
	certificateMissing = "Tidak ditemukan data dengan nomor akta \"%s\"."
	officeFound        = "Ditemukan %d data pernikahan di KUA \"%s\":"
	officeNotFound     = "Tidak ditemukan data pernikahan di KUA \"%s\"."
	dateFound          = "Ditemukan %d data pernikahan pada tanggal %s:"
	dateNotFound       = "Tidak ditemukan data pernikahan pada tanggal %s."
	yearNotFound       = "Tidak ditemukan data pernikahan untuk tahun %d."
	yearStats          = "📊 Statistik Pernikahan Tahun %d:\n\n" +
		"• Total Pernikahan: %d pasangan\n" +
		"• Rata-rata per bulan: %d pasangan\n" +
		"• Rata-rata per hari: %.2f pasangan"
	yearCoverage = "\n\nData ini mencakup seluruh wilayah %s yang tercatat di sistem Kemenag."
)

// WelcomeText is the first assistant message of every session.
func WelcomeText(region string) string {
	office := "Kemenag"
	if region != "" {
		office = "Kemenag " + region
	}
	return fmt.Sprintf("Selamat datang di Chatbot Data Pernikahan %s! 👋\n\n"+
		"Saya dapat membantu Anda mencari informasi tentang:\n"+
		"• Data pernikahan berdasarkan nama\n"+
		"• Data berdasarkan nomor akta\n"+
		"• Statistik pernikahan per tahun\n"+
		"• Informasi KUA\n"+
		"• Data berdasarkan tanggal akad\n\n"+
		"Silakan ketik pertanyaan Anda atau gunakan contoh berikut:\n"+
		"\"Cari data nikah atas nama Ahmad\"\n"+
		"\"Berapa jumlah pernikahan tahun 2024\"\n"+
		"\"Data KUA Kota Selatan\"", office)
}
