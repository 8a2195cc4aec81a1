package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestMakeCode(t *testing.T) {
	code := MakeCode(ServiceDataNikah, CategoryRequest, 1)
	assert.Equal(t, 2101001, code)

	service, category, seq := ParseCode(code)
	assert.Equal(t, ServiceDataNikah, service)
	assert.Equal(t, CategoryRequest, category)
	assert.Equal(t, 1, seq)
	assert.True(t, IsClientError(code))
	assert.False(t, IsServerError(code))
}

func TestErrno_Message(t *testing.T) {
	tests := []struct {
		name string
		lang string
		want string
	}{
		{"印尼语", "id", "Email atau kata sandi salah"},
		{"印尼语地区", "id-ID,id;q=0.9", "Email atau kata sandi salah"},
		{"英语", "en-US", "Invalid email or password"},
		{"空", "", "Invalid email or password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrInvalidCredentials.Message(tt.lang))
		})
	}
}

func TestErrno_WithCauseKeepsIdentity(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := ErrRecordQuery.WithCause(cause)

	assert.True(t, stderrors.Is(err, ErrRecordQuery))
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
	assert.Equal(t, codes.Internal, err.GRPCStatus())
	assert.Contains(t, fmt.Sprintf("%+v", err), "caused by: connection reset")
}

func TestErrno_WithMessageDoesNotMutateRegistered(t *testing.T) {
	custom := ErrBadRequest.WithMessage("keyword wajib diisi")
	assert.Equal(t, "keyword wajib diisi", custom.Message("id"))
	assert.Equal(t, "Bad request", ErrBadRequest.MessageEN)
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	wrapped := fmt.Errorf("import row 3: %w", ErrImportFailed)
	assert.Equal(t, ErrImportFailed.Code, FromError(wrapped).Code)

	plain := FromError(stderrors.New("boom"))
	assert.Equal(t, ErrInternal.Code, plain.Code)
	assert.True(t, IsCode(plain, ErrInternal.Code))
}

func TestRegister_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register(New(ErrImportFailed.Code, http.StatusInternalServerError, codes.Internal, "dup", "dup"))
	})
	_, ok := Lookup(ErrImportFailed.Code)
	assert.True(t, ok)
}
