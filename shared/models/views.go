package models

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination computes the page count as ceil(total/limit).
func NewPagination(page, limit int, total int64) Pagination {
	var pages int64
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// PageResult is one page of transactions plus its pagination metadata.
type PageResult struct {
	Transactions []TransactionRecord `json:"transactions"`
	Pagination   Pagination          `json:"pagination"`
}

// NewPageResult never leaves Transactions nil so an empty page encodes as [].
func NewPageResult(records []TransactionRecord, page, limit int, total int64) *PageResult {
	if records == nil {
		records = []TransactionRecord{}
	}
	return &PageResult{
		Transactions: records,
		Pagination:   NewPagination(page, limit, total),
	}
}
