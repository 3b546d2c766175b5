package app

// PageInfo echoes the normalized paging window alongside the total count.
type PageInfo struct {
	Page    int
	PerPage int
	Total   int64
}

func normalizePage(page, perPage, def, max int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = def
	}
	if perPage > max {
		perPage = max
	}
	return page, perPage
}
