package query

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (page-1)*MaxLimit within a signed 64-bit offset.
	MaxPage uint64 = math.MaxInt64/MaxLimit + 1
)

// Pagination describes one page of a listing.
type Pagination struct {
	Page       uint64
	Limit      uint64
	Total      uint64
	TotalPages uint64
}

// NormalizePage clamps raw page and limit values. Non-positive values fall back to the
// defaults, limit is capped at MaxLimit and page at MaxPage.
func NormalizePage(page, limit int) (uint64, uint64) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	p := uint64(page)
	if p > MaxPage {
		p = MaxPage
	}
	return p, uint64(limit)
}

func newPagination(page, limit, total uint64) Pagination {
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}
}
