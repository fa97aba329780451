package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	Success(c, 0, []string{"a"}, "ok", Page(2, 10, 25))

	var got struct {
		Status    int      `json:"status"`
		RequestID string   `json:"request_id"`
		Success   bool     `json:"success"`
		Data      []string `json:"data"`
		Meta      PageMeta `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if w.Code != http.StatusOK || got.Status != 200 || !got.Success || got.RequestID != "req-1" {
		t.Fatalf("unexpected envelope %+v", got)
	}
	if !got.Meta.HasMore || got.Meta.Total != 25 {
		t.Fatalf("meta = %+v", got.Meta)
	}
}

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error[any](c, 0, "bad", map[string]string{"title": "is required"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	var got map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got["success"] != false || got["error"].(map[string]any)["title"] != "is required" {
		t.Fatalf("body = %v", got)
	}
	if _, ok := got["data"]; ok {
		t.Fatal("error envelope must not carry data")
	}
}

func TestPageLastPage(t *testing.T) {
	if Page(3, 10, 25).HasMore {
		t.Fatal("last page reported more results")
	}
}
