package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skumatrix/internal/http/response"
	"github.com/skumatrix/internal/service"

	"github.com/gin-gonic/gin"
)

func respondAndDecode(t *testing.T, err error) response.Response {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondServiceError(c, err, "内部错误")

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp
}

func TestRespondServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{err: service.ErrAttributeValueInvalid, code: response.CodeBadRequest},
		{err: service.ErrTooManyCombinations, code: response.CodeBadRequest},
		{err: service.ErrNotFound, code: response.CodeNotFound},
		{err: service.ErrForbidden, code: response.CodeForbidden},
		{err: service.ErrVariantAttributesDuplicate, code: response.CodeConflict},
		{err: service.ErrTemplateKeyExists, code: response.CodeConflict},
		{err: service.ErrSKUGenerationFailed, code: response.CodeConflict},
		{err: service.ErrSlugExists, code: response.CodeConflict},
		{err: service.ErrCategoryInUse, code: response.CodeConflict},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			resp := respondAndDecode(t, tc.err)
			if resp.StatusCode != tc.code {
				t.Fatalf("status_code want %d got %d", tc.code, resp.StatusCode)
			}
			if resp.Msg != tc.err.Error() {
				t.Fatalf("msg want %q got %q", tc.err.Error(), resp.Msg)
			}
		})
	}
}

func TestRespondServiceErrorWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("删除变体失败: %w", service.ErrNotFound)
	resp := respondAndDecode(t, wrapped)
	if resp.StatusCode != response.CodeNotFound {
		t.Fatalf("wrapped error should match by errors.Is, got %d", resp.StatusCode)
	}
}

func TestRespondServiceErrorUnknownFallsBackToInternal(t *testing.T) {
	resp := respondAndDecode(t, errors.New("connection reset"))
	if resp.StatusCode != response.CodeInternal {
		t.Fatalf("unknown error want %d got %d", response.CodeInternal, resp.StatusCode)
	}
	if resp.Msg != "内部错误" {
		t.Fatalf("fallback msg mismatch: %q", resp.Msg)
	}
}
