package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Marriage records service errors.
var (
	// 导入
	ErrImportInvalidFile = Register(New(MakeCode(ServiceDataNikah, CategoryRequest, 1), http.StatusBadRequest, codes.InvalidArgument, "Only .xls and .xlsx files are accepted", "Hanya file .xls dan .xlsx yang diterima"))
	ErrImportNoHeader    = Register(New(MakeCode(ServiceDataNikah, CategoryRequest, 2), http.StatusBadRequest, codes.InvalidArgument, "Spreadsheet has no header row", "File tidak memiliki baris judul kolom"))
	ErrImportUnreadable  = Register(New(MakeCode(ServiceDataNikah, CategoryRequest, 3), http.StatusBadRequest, codes.InvalidArgument, "Spreadsheet could not be read", "File tidak dapat dibaca"))
	ErrImportFailed      = Register(New(MakeCode(ServiceDataNikah, CategoryInternal, 1), http.StatusInternalServerError, codes.Internal, "Import aborted", "Impor data dihentikan"))

	// 查询
	ErrSearchTypeInvalid = Register(New(MakeCode(ServiceDataNikah, CategoryRequest, 10), http.StatusBadRequest, codes.InvalidArgument, "Unknown search type", "Jenis pencarian tidak dikenal"))
	ErrYearOutOfRange    = Register(New(MakeCode(ServiceDataNikah, CategoryRequest, 11), http.StatusBadRequest, codes.InvalidArgument, "Year is out of range", "Tahun di luar jangkauan"))
	ErrRecordQuery       = Register(New(MakeCode(ServiceDataNikah, CategoryDatabase, 1), http.StatusInternalServerError, codes.Internal, "Failed to query marriage records", "Gagal mengambil data pernikahan"))

	// 对话
	ErrChatSessionNotFound = Register(New(MakeCode(ServiceDataNikah, CategoryResource, 1), http.StatusNotFound, codes.NotFound, "Chat session not found", "Sesi percakapan tidak ditemukan"))

	// 用户
	ErrUserExists = Register(New(MakeCode(ServiceDataNikah, CategoryConflict, 1), http.StatusConflict, codes.AlreadyExists, "User already exists", "Pengguna sudah terdaftar"))
)
