package cqrs

import "net/url"

// ---------- Transaction queries ----------

// ListTransactionsQuery lists transactions matching the filters, search,
// sort and paging carried in Params.
type ListTransactionsQuery struct {
	Params url.Values
}

// GetTransactionQuery fetches a single transaction by its business id.
type GetTransactionQuery struct {
	TransactionID string
}

// ListCustomerTransactionsQuery lists one customer's transactions. Only the
// paging and sort keys of Params are honoured.
type ListCustomerTransactionsQuery struct {
	CustomerID string
	Params     url.Values
}
