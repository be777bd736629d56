package catalog

import (
	"encoding/json"
	"strconv"
)

// EllipsisLabel is rendered for elided runs of page numbers
const EllipsisLabel = "…"

// maxVisiblePages is the page count up to which every page is listed
const maxVisiblePages = 5

// Paginate returns the items of page pageNumber (1-based). Invalid arguments and
// pages past the end yield an empty slice.
func Paginate[T any](items []T, pageSize, pageNumber int) []T {
	if pageSize <= 0 || pageNumber < 1 {
		return []T{}
	}

	// compare page indexes before multiplying so huge page numbers cannot wrap
	if pageNumber-1 >= PageCount(len(items), pageSize) {
		return []T{}
	}

	start := (pageNumber - 1) * pageSize
	end := len(items)
	if pageSize < end-start {
		end = start + pageSize
	}
	return items[start:end]
}

// PageCount is ceil(total / pageSize)
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	count := total / pageSize
	if total%pageSize != 0 {
		count++
	}
	return count
}

// PageToken is either a page number or an ellipsis
type PageToken struct {
	Page     int
	Ellipsis bool
}

func page(n int) PageToken { return PageToken{Page: n} }

var ellipsis = PageToken{Ellipsis: true}

func (t PageToken) String() string {
	if t.Ellipsis {
		return EllipsisLabel
	}
	return strconv.Itoa(t.Page)
}

// MarshalJSON renders page numbers as numbers and ellipses as strings
func (t PageToken) MarshalJSON() ([]byte, error) {
	if t.Ellipsis {
		return json.Marshal(EllipsisLabel)
	}
	return json.Marshal(t.Page)
}

// PageWindow builds the compact list of page links shown under a product grid
func PageWindow(currentPage, pageCount int) []PageToken {
	if pageCount < 1 {
		return []PageToken{}
	}

	if pageCount <= maxVisiblePages {
		tokens := make([]PageToken, 0, pageCount)
		for i := 1; i <= pageCount; i++ {
			tokens = append(tokens, page(i))
		}
		return tokens
	}

	switch {
	case currentPage <= 3:
		return []PageToken{page(1), page(2), page(3), page(4), ellipsis, page(pageCount)}
	case currentPage >= pageCount-2:
		return []PageToken{page(1), ellipsis, page(pageCount - 3), page(pageCount - 2), page(pageCount - 1), page(pageCount)}
	default:
		return []PageToken{page(1), ellipsis, page(currentPage - 1), page(currentPage), page(currentPage + 1), ellipsis, page(pageCount)}
	}
}
