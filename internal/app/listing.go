package app

// Shared listing pattern: repositories return records newest-first (capped at
// the configured fetch cap), the service filters in memory where the store
// cannot, then slices a one-indexed page.

const (
	defaultPageSize = 12
	maxPageSize     = 50
)

// normalizePage clamps a one-indexed page and a bounded page size, falling
// back to def when the size is unset or invalid
func normalizePage(page, pageSize, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = def
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// paginate returns the one-indexed page slice and the total filtered count
func paginate[T any](items []T, page, pageSize int) ([]T, int) {
	total := len(items)

	start := (page - 1) * pageSize
	if start >= total {
		return []T{}, total
	}

	end := start + pageSize
	if end > total {
		end = total
	}

	return items[start:end], total
}
