package response

import (
	"net/http"
	"testing"

	"github.com/kart-io/datanikah/pkg/utils/errors"
	"github.com/stretchr/testify/assert"
)

func TestSuccess(t *testing.T) {
	r := Success(map[string]int{"total": 12})
	assert.True(t, r.IsSuccess())
	assert.Equal(t, http.StatusOK, r.HTTPStatus())
	assert.NotZero(t, r.Timestamp)
}

func TestErrWithLang(t *testing.T) {
	r := ErrWithLang(errors.ErrImportInvalidFile, "id")
	assert.Equal(t, errors.ErrImportInvalidFile.Code, r.Code)
	assert.Equal(t, http.StatusBadRequest, r.HTTPStatus())
	assert.Equal(t, "Hanya file .xls dan .xlsx yang diterima", r.Message)

	assert.True(t, ErrWithLang(nil, "id").IsSuccess())
}

func TestHTTPStatus_FallsBackToCategory(t *testing.T) {
	r := &Response{Code: errors.MakeCode(errors.ServiceDataNikah, errors.CategoryConflict, 999)}
	assert.Equal(t, http.StatusConflict, r.HTTPStatus())

	r = &Response{Code: errors.MakeCode(errors.ServiceDataNikah, errors.CategoryDatabase, 999)}
	assert.Equal(t, http.StatusInternalServerError, r.HTTPStatus())
}

func TestList(t *testing.T) {
	r := List([]string{"a", "b"}, 2)
	data, ok := r.Data.(*ListData)
	assert.True(t, ok)
	assert.Equal(t, 2, data.Total)
}
