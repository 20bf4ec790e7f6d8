package model

import (
	"fmt"
	"strconv"
)

// Pagination defaults and bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 50
)

var ErrInvalidPagination = fmt.Errorf("%w: page must be >= 1 and limit between 1 and %d", ErrInvalidOperation, MaxLimit)

// Page is a validated page/limit pair.
type Page struct {
	Page  int
	Limit int
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta builds the response block. hasMore is true whenever the page came back
// full, so a last page that is exactly full still reports more.
func (p Page) Meta(returned int) PaginationMeta {
	return PaginationMeta{
		Page:    p.Page,
		Limit:   p.Limit,
		HasMore: returned == p.Limit,
	}
}

type PaginationMeta struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

// ParsePage reads raw query values. Empty strings take the defaults.
func ParsePage(rawPage, rawLimit string) (Page, error) {
	p := Page{Page: DefaultPage, Limit: DefaultLimit}

	if rawPage != "" {
		n, err := strconv.Atoi(rawPage)
		if err != nil || n < 1 {
			return Page{}, ErrInvalidPagination
		}
		p.Page = n
	}

	if rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n < 1 || n > MaxLimit {
			return Page{}, ErrInvalidPagination
		}
		p.Limit = n
	}

	return p, nil
}
