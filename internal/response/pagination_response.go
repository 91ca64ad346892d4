package response

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPagination describes page (1-based) of total items. From and To are
// 1-based positions and stay zero when the page is past the end.
func NewPagination(page, pageSize, total int) *Pagination {
	p := &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: int64(total),
	}
	if pageSize <= 0 {
		return p
	}
	p.TotalPages = int64((total + pageSize - 1) / pageSize)
	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	if start < end {
		p.From = start + 1
		p.To = end
	}
	p.HasMore = end < total
	return p
}
