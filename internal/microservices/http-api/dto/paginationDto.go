package dto

// ItemsPage is a zero-indexed page slice of a larger result set. Total counts
// the whole set before slicing.
type ItemsPage[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Paginate slices [page*limit, (page+1)*limit) out of all. A page past the end
// yields an empty items slice with the correct total.
func Paginate[T any](all []T, page, limit int) ItemsPage[T] {
	start := page * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	items := all[start:end]
	if items == nil {
		items = make([]T, 0)
	}

	return ItemsPage[T]{
		Items: items,
		Total: len(all),
		Page:  page,
		Limit: limit,
	}
}
