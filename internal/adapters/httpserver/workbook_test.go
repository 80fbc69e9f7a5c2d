package httpserver

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteWorkbookFailureSendsJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders/export", nil)

	writeWorkbook(rec, req, "orders-20260101.xlsx", func(out io.Writer) error {
		_, _ = out.Write([]byte("PK partial"))
		return errors.New("sheet broke")
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

func TestWriteWorkbookSendsFile(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders/export", nil)

	writeWorkbook(rec, req, "orders-20260101.xlsx", func(out io.Writer) error {
		_, err := out.Write([]byte("PK data"))
		return err
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="orders-20260101.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "7", rec.Header().Get("Content-Length"))
	assert.Equal(t, "PK data", rec.Body.String())
}
