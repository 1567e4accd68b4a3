package app

import "github.com/bft-labs/vaultsweep/internal/domain"

// PlanPages splits a collection of total records into list requests of at
// most limit records each.
//
// The number of pages is ceil(total/limit). An exact multiple of limit never
// produces a trailing empty page, and total <= 0 produces no pages at all, so
// a page_size=0 request is never sent.
func PlanPages(total, limit int) []domain.PageRequest {
	if total <= 0 {
		return nil
	}
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}

	n := (total + limit - 1) / limit
	plan := make([]domain.PageRequest, 0, n)
	for i := 0; i < n; i++ {
		offset := i * limit
		size := limit
		if remaining := total - offset; remaining < size {
			size = remaining
		}
		plan = append(plan, domain.PageRequest{Offset: offset, Size: size})
	}
	return plan
}
