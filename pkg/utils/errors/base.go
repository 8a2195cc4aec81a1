package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// OK represents a successful operation.
var OK = Register(New(0, http.StatusOK, codes.OK, "Success", "Berhasil"))

// Request errors.
var (
	ErrBadRequest       = Register(New(MakeCode(ServiceCommon, CategoryRequest, 0), http.StatusBadRequest, codes.InvalidArgument, "Bad request", "Permintaan tidak valid"))
	ErrInvalidParam     = Register(New(MakeCode(ServiceCommon, CategoryRequest, 1), http.StatusBadRequest, codes.InvalidArgument, "Invalid parameter", "Parameter tidak valid"))
	ErrValidationFailed = Register(New(MakeCode(ServiceCommon, CategoryRequest, 4), http.StatusBadRequest, codes.InvalidArgument, "Validation failed", "Validasi gagal"))
	ErrRequestTooLarge  = Register(New(MakeCode(ServiceCommon, CategoryRequest, 5), http.StatusRequestEntityTooLarge, codes.InvalidArgument, "Request entity too large", "Ukuran permintaan terlalu besar"))
)

// Authentication errors.
var (
	ErrUnauthorized       = Register(New(MakeCode(ServiceCommon, CategoryAuth, 0), http.StatusUnauthorized, codes.Unauthenticated, "Unauthorized", "Tidak terautentikasi"))
	ErrInvalidToken       = Register(New(MakeCode(ServiceCommon, CategoryAuth, 1), http.StatusUnauthorized, codes.Unauthenticated, "Invalid token", "Token tidak valid"))
	ErrTokenExpired       = Register(New(MakeCode(ServiceCommon, CategoryAuth, 2), http.StatusUnauthorized, codes.Unauthenticated, "Token expired", "Token kedaluwarsa"))
	ErrInvalidCredentials = Register(New(MakeCode(ServiceCommon, CategoryAuth, 3), http.StatusUnauthorized, codes.Unauthenticated, "Invalid email or password", "Email atau kata sandi salah"))
	ErrTokenRevoked       = Register(New(MakeCode(ServiceCommon, CategoryAuth, 4), http.StatusUnauthorized, codes.Unauthenticated, "Token has been revoked", "Token telah dicabut"))
)

// Resource errors.
var (
	ErrNotFound      = Register(New(MakeCode(ServiceCommon, CategoryResource, 0), http.StatusNotFound, codes.NotFound, "Resource not found", "Data tidak ditemukan"))
	ErrRouteNotFound = Register(New(MakeCode(ServiceCommon, CategoryResource, 4), http.StatusNotFound, codes.NotFound, "Route not found", "Rute tidak ditemukan"))
)

// Internal errors.
var (
	ErrInternal       = Register(New(MakeCode(ServiceCommon, CategoryInternal, 0), http.StatusInternalServerError, codes.Internal, "Internal server error", "Terjadi kesalahan pada server"))
	ErrPanic          = Register(New(MakeCode(ServiceCommon, CategoryInternal, 2), http.StatusInternalServerError, codes.Internal, "Internal server panic", "Terjadi kesalahan pada server"))
	ErrNotImplemented = Register(New(MakeCode(ServiceCommon, CategoryInternal, 3), http.StatusNotImplemented, codes.Unimplemented, "Not implemented", "Belum tersedia"))
)

// Infrastructure errors.
var (
	ErrDatabase = Register(New(MakeCode(ServiceInfraDB, CategoryDatabase, 0), http.StatusInternalServerError, codes.Internal, "Database error", "Kesalahan basis data"))
	ErrCache    = Register(New(MakeCode(ServiceInfraCache, CategoryCache, 0), http.StatusInternalServerError, codes.Internal, "Cache error", "Kesalahan cache"))
)
