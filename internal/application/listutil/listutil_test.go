package listutil

import (
	"net/url"
	"testing"
)

// TestRequested verifies pagination only engages when page is present.
func TestRequested(t *testing.T) {
	if Requested(url.Values{}) {
		t.Error("Requested = true with no page param")
	}
	if !Requested(url.Values{"page": {"2"}}) {
		t.Error("Requested = false with page param")
	}
}

// TestParsePageParams_Defaults verifies default page params when no query values provided.
func TestParsePageParams_Defaults(t *testing.T) {
	q := url.Values{}
	p := ParsePageParams(q)
	if p.Page != 1 {
		t.Errorf("expected page 1, got %d", p.Page)
	}
	if p.PerPage != DefaultPerPage {
		t.Errorf("expected per_page %d, got %d", DefaultPerPage, p.PerPage)
	}
}

// TestParsePageParams_Valid verifies correct parsing of valid page and per_page values.
func TestParsePageParams_Valid(t *testing.T) {
	q := url.Values{"page": {"3"}, "per_page": {"20"}}
	p := ParsePageParams(q)
	if p.Page != 3 {
		t.Errorf("expected page 3, got %d", p.Page)
	}
	if p.PerPage != 20 {
		t.Errorf("expected per_page 20, got %d", p.PerPage)
	}
}

// TestParsePageParams_InvalidPerPage verifies fallback to default for invalid per_page.
func TestParsePageParams_InvalidPerPage(t *testing.T) {
	q := url.Values{"per_page": {"25"}} // not in allowed list
	p := ParsePageParams(q)
	if p.PerPage != DefaultPerPage {
		t.Errorf("expected default per_page %d for invalid value, got %d", DefaultPerPage, p.PerPage)
	}
}

// TestParsePageParams_NegativePage verifies page is clamped to 1 for negative input.
func TestParsePageParams_NegativePage(t *testing.T) {
	q := url.Values{"page": {"-1"}}
	p := ParsePageParams(q)
	if p.Page != 1 {
		t.Errorf("expected page 1 for negative input, got %d", p.Page)
	}
}

// TestNewPageInfo verifies pagination metadata computation.
func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		perPage   int
		total     int
		wantPages int
		wantPage  int
		wantStart int
		wantEnd   int
	}{
		{"basic", 1, 20, 85, 5, 1, 0, 20},
		{"page2", 2, 20, 85, 5, 2, 20, 40},
		{"lastPage", 5, 20, 85, 5, 5, 80, 85},
		{"pageBeyondTotal", 10, 20, 85, 5, 5, 80, 85},
		{"emptyList", 1, 20, 0, 1, 1, 0, 0},
		{"exactFit", 1, 10, 10, 1, 1, 0, 10},
		{"singleRow", 1, 20, 1, 1, 1, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pi := NewPageInfo(PageParams{Page: tt.page, PerPage: tt.perPage}, tt.total)
			if pi.TotalPages != tt.wantPages {
				t.Errorf("TotalPages: got %d, want %d", pi.TotalPages, tt.wantPages)
			}
			if pi.Page != tt.wantPage {
				t.Errorf("Page: got %d, want %d", pi.Page, tt.wantPage)
			}
			start, end := pi.Bounds()
			if start != tt.wantStart {
				t.Errorf("start: got %d, want %d", start, tt.wantStart)
			}
			if end != tt.wantEnd {
				t.Errorf("end: got %d, want %d", end, tt.wantEnd)
			}
		})
	}
}

// TestPaginate verifies slicing rows to a page window.
func TestPaginate(t *testing.T) {
	rows := make([]int, 0, 45)
	for i := 0; i < 45; i++ {
		rows = append(rows, i)
	}

	page, info := Paginate(rows, PageParams{Page: 3, PerPage: 20})
	if info.Total != 45 || info.TotalPages != 3 {
		t.Errorf("info = %+v, want total 45 over 3 pages", info)
	}
	if len(page) != 5 {
		t.Fatalf("page len = %d, want 5", len(page))
	}
	if page[0] != 40 || page[4] != 44 {
		t.Errorf("page window = [%d..%d], want [40..44]", page[0], page[4])
	}

	empty, info := Paginate([]int{}, PageParams{Page: 1, PerPage: 10})
	if len(empty) != 0 || info.Total != 0 {
		t.Errorf("empty input: got %d rows, total %d", len(empty), info.Total)
	}
}
