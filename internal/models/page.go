package models

type SortField string

const (
	SortByDate  SortField = "fecha"
	SortByTitle SortField = "titulo"
	SortByID    SortField = "id"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PageRequest struct {
	Page int
	Size int
	Sort SortField
	Desc bool
}

// DefaultPageRequest is the first page of 10, oldest first.
func DefaultPageRequest() PageRequest {
	return PageRequest{Page: 0, Size: DefaultPageSize, Sort: SortByDate}
}

func (p PageRequest) Offset() int { return p.Page * p.Size }

// TopicFilter narrows a topic listing; closed topics are never listed.
type TopicFilter struct {
	Course *Course
}

type Page[T any] struct {
	Items   []T
	Total   int
	Request PageRequest
}

func (p Page[T]) TotalPages() int {
	if p.Request.Size <= 0 {
		return 0
	}
	return (p.Total + p.Request.Size - 1) / p.Request.Size
}

// MapPage converts the items of a page, keeping its bookkeeping.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, fn(it))
	}
	return Page[U]{Items: out, Total: p.Total, Request: p.Request}
}
