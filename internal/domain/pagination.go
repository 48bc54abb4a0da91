package domain

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPageNumber keeps offsets well inside int4.
	MaxPageNumber = 10000
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// Normalize clamps the page into accepted bounds.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Number > MaxPageNumber {
		p.Number = MaxPageNumber
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset returns the zero-based row offset.
func (p Page) Offset() int {
	n := p.Normalize()
	return (n.Number - 1) * n.Size
}

// Pagination describes a page of results.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes page counts for total matching rows.
func NewPagination(p Page, total int) Pagination {
	p = p.Normalize()
	pages := (total + p.Size - 1) / p.Size
	if pages == 0 {
		pages = 1
	}
	return Pagination{Page: p.Number, PageSize: p.Size, Total: total, TotalPages: pages}
}

// MutationResult is the common shape returned by write procedures.
type MutationResult struct {
	Success bool
	Message string
	ID      string
}
