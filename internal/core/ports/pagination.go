package ports

// PageRequest carries the paging and ordering parameters shared by list
// endpoints. Page is 1-based.
type PageRequest struct {
	Page     int
	Limit    int
	SortBy   string // logical field name, whitelisted by each repository
	SortDesc bool
}

// ListResult is a page of items plus the totals needed for pagination.
type ListResult[T any] struct {
	Items      []*T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}
