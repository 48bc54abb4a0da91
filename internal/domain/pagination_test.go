package domain

import "testing"

func TestPageNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Page
		want Page
	}{
		{"defaults", Page{}, Page{Number: 1, Size: DefaultPageSize}},
		{"negative", Page{Number: -3, Size: -1}, Page{Number: 1, Size: DefaultPageSize}},
		{"size capped", Page{Number: 2, Size: 500}, Page{Number: 2, Size: MaxPageSize}},
		{"number capped", Page{Number: 99999999, Size: 100}, Page{Number: MaxPageNumber, Size: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestPageOffsetFitsInt4(t *testing.T) {
	off := Page{Number: 1 << 40, Size: 1 << 20}.Offset()
	if off != (MaxPageNumber-1)*MaxPageSize {
		t.Fatalf("unexpected offset %d", off)
	}
	if off > 1<<31-1 {
		t.Fatalf("offset %d overflows int4", off)
	}
	if got := (Page{Number: 3, Size: 10}).Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(Page{Number: 2, Size: 10}, 25)
	if p.TotalPages != 3 || p.Total != 25 || p.Page != 2 {
		t.Fatalf("unexpected pagination %+v", p)
	}
	if empty := NewPagination(Page{}, 0); empty.TotalPages != 1 {
		t.Fatalf("expected one page for no rows, got %d", empty.TotalPages)
	}
}
