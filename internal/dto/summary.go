package dto

// SummaryQuery carries the shared filter parameters of the summary report
// endpoints, bound from the query string.
type SummaryQuery struct {
	SetID      string `form:"setId"`
	ActiveOnly bool   `form:"activeOnly"`
}
