package paging_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gridleapp/gridle/internal/app/system/paging"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		defaultLimit int
		wantPage     int
		wantLimit    int
	}{
		{"defaults", "/tasks", 0, 1, paging.DefaultLimit},
		{"explicit", "/tasks?page=3&limit=25", 0, 3, 25},
		{"custom default limit", "/admin/users", 10, 1, 10},
		{"invalid page", "/tasks?page=zero", 0, 1, paging.DefaultLimit},
		{"negative page", "/tasks?page=-2", 0, 1, paging.DefaultLimit},
		{"limit capped", "/tasks?limit=99999", 0, 1, paging.MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			p := paging.Parse(r, tt.defaultLimit)
			if p.Page != tt.wantPage || p.Limit != tt.wantLimit {
				t.Errorf("Parse() = %+v, want page %d limit %d", p, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestSkip(t *testing.T) {
	p := paging.Params{Page: 3, Limit: 10}
	if got := p.Skip(); got != 20 {
		t.Errorf("Skip() = %d, want 20", got)
	}
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		total     int64
		limit     int
		wantPages int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
	}
	for _, tt := range tests {
		m := paging.NewMeta(paging.Params{Page: 1, Limit: tt.limit}, tt.total)
		if m.PageCount != tt.wantPages {
			t.Errorf("total %d limit %d: pages = %d, want %d", tt.total, tt.limit, m.PageCount, tt.wantPages)
		}
		if m.Total != tt.total {
			t.Errorf("total: got %d, want %d", m.Total, tt.total)
		}
	}
}
