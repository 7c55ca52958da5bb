package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "/?", 1, DefaultPageSize},
		{"explicit", "/?page=3&pageSize=50", 3, 50},
		{"zero page clamps to one", "/?page=0", 1, DefaultPageSize},
		{"negative page clamps to one", "/?page=-2", 1, DefaultPageSize},
		{"oversized pageSize clamps to max", "/?pageSize=500", 1, MaxPageSize},
		{"garbage falls back", "/?page=abc&pageSize=xyz", 1, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := pageParams(testContext(t, tt.url))
			if page != tt.wantPage || pageSize != tt.wantPageSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d", page, pageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestCreatePaginatedResponse(t *testing.T) {
	c := testContext(t, "/?page=2&pageSize=10")

	resp := CreatePaginatedResponse(c, []int{1, 2, 3}, 25)

	if resp.CurrentPage != 2 || resp.PageSize != 10 {
		t.Errorf("envelope page/size = %d/%d, want 2/10", resp.CurrentPage, resp.PageSize)
	}
	if resp.TotalRows != 25 || resp.TotalPages != 3 {
		t.Errorf("envelope totals = %d rows / %d pages, want 25/3", resp.TotalRows, resp.TotalPages)
	}

	empty := CreatePaginatedResponse(c, nil, 0)
	if empty.TotalPages != 0 {
		t.Errorf("empty result has %d pages, want 0", empty.TotalPages)
	}
}
