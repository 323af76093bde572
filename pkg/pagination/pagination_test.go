package pagination_test

import (
	"net/url"
	"testing"

	"github.com/pulse-works/pulse/pkg/pagination"
)

var cfg = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"zero values", 0, 0, 1, 20},
		{"negative page", -5, 10, 1, 10},
		{"oversized page size", 2, 500, 2, 100},
		{"valid request", 3, 50, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pagination.PageRequest{Page: tt.page, PageSize: tt.pageSize}
			req.Normalize(cfg)

			if req.Page != tt.wantPage {
				t.Errorf("page: got %d, want %d", req.Page, tt.wantPage)
			}
			if req.PageSize != tt.wantPageSize {
				t.Errorf("page_size: got %d, want %d", req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("page", "2")
	values.Set("page_size", "10")
	values.Set("search", "payrolls")
	values.Set("sort", "-rating,created_at")

	req := pagination.PageRequestFromQuery(values, cfg)

	if req.Page != 2 || req.PageSize != 10 {
		t.Errorf("page/page_size: got %d/%d, want 2/10", req.Page, req.PageSize)
	}
	if req.Search == nil || *req.Search != "payrolls" {
		t.Errorf("search: got %v, want payrolls", req.Search)
	}
	if len(req.Sort) != 2 {
		t.Fatalf("sort fields: got %d, want 2", len(req.Sort))
	}
	if req.Sort[0].Field != "rating" || !req.Sort[0].Descending {
		t.Errorf("sort[0]: got %+v, want rating descending", req.Sort[0])
	}
	if req.Sort[1].Field != "created_at" || req.Sort[1].Descending {
		t.Errorf("sort[1]: got %+v, want created_at ascending", req.Sort[1])
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		pageSize       int
		wantTotalPages int
	}{
		{"exact pages", 100, 20, 5},
		{"partial last page", 101, 20, 6},
		{"empty result", 0, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]string{}, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("total_pages: got %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
		})
	}
}

func TestNewPageResultNilData(t *testing.T) {
	result := pagination.NewPageResult[string](nil, 0, 1, 20)
	if result.Data == nil {
		t.Error("data: got nil, want empty slice")
	}
}
