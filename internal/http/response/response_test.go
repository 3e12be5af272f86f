package response

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/blindbox-next/internal/constants"

	"github.com/gin-gonic/gin"
)

func TestErrorCarriesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyRequestID, "req-1")

	Conflict(c, "Item already opened")

	if w.Code != 200 {
		t.Fatalf("envelope should always use http 200, got %d", w.Code)
	}
	var body struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.StatusCode != CodeConflict || body.Msg != "Item already opened" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Data["request_id"] != "req-1" {
		t.Fatalf("request id missing: %+v", body.Data)
	}
}

func TestErrorWithoutRequestIDHasNullData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	NotFound(c, "missing")

	if got := w.Body.String(); got != `{"status_code":404,"msg":"missing","data":null}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 41)
	if p.TotalPage != 3 {
		t.Fatalf("total page want 3 got %d", p.TotalPage)
	}
	if empty := NewPagination(1, 0, 5); empty.TotalPage != 0 {
		t.Fatalf("zero page size should not divide, got %d", empty.TotalPage)
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("db down")
	appErr := NewKeyedError(CodeInternal, "error.store_unavailable", cause).Localize("Store unavailable")
	if !errors.Is(appErr, cause) {
		t.Fatalf("app error should unwrap to cause")
	}
	if appErr.Error() != "Store unavailable: db down" {
		t.Fatalf("unexpected message: %s", appErr.Error())
	}
	if !IsServerError(appErr.Code) || IsServerError(CodeConflict) {
		t.Fatalf("server error classification mismatch")
	}
}
