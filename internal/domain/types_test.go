package domain

import "testing"

func TestPaginationNormalize(t *testing.T) {
	cases := []struct {
		name     string
		in       Pagination
		page     int
		pageSize int
	}{
		{"zero values default", Pagination{}, 1, 20},
		{"negative page clamps", Pagination{Page: -3, PageSize: 10}, 1, 10},
		{"oversized page size caps", Pagination{Page: 2, PageSize: 500}, 2, 100},
		{"valid untouched", Pagination{Page: 4, PageSize: 25}, 4, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in
			p.Normalize()
			if p.Page != tc.page || p.PageSize != tc.pageSize {
				t.Fatalf("Normalize = page %d size %d, want %d/%d", p.Page, p.PageSize, tc.page, tc.pageSize)
			}
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	p := Pagination{Page: 3, PageSize: 20}
	if got := p.Offset(); got != 40 {
		t.Fatalf("Offset = %d, want 40", got)
	}
}

func TestRequestContextIsAdmin(t *testing.T) {
	if (RequestContext{Role: "customer"}).IsAdmin() {
		t.Fatalf("customer passed as admin")
	}
	if !(RequestContext{Role: "admin"}).IsAdmin() {
		t.Fatalf("admin not recognized")
	}
}
