package views

// PageSize is the fixed number of rows per dashboard page.
const PageSize = 25

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

// Paginate returns rows [(n-1)*PageSize, n*PageSize). Pages past the end are empty;
// n below 1 is read as the first page.
func Paginate[T any](rows []T, n int) Page[T] {
	if n < 1 {
		n = 1
	}
	p := Page[T]{Page: n, TotalPages: TotalPages(len(rows)), TotalItems: len(rows), Items: []T{}}
	start := (n - 1) * PageSize
	if start >= len(rows) {
		return p
	}
	end := start + PageSize
	if end > len(rows) {
		end = len(rows)
	}
	p.Items = rows[start:end]
	return p
}

func TotalPages(totalItems int) int {
	return (totalItems + PageSize - 1) / PageSize
}
