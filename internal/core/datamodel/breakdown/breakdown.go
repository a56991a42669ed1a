// Package breakdown holds the backend wire shape for salary-breakdown
// records: one percentage per transaction type per nationality category.
package breakdown

// Record is one backend breakdown row. The backend treats POSTs as
// create-or-update keyed by (transactionCode, employeeCategory).
type Record struct {
	SerNo            *int64  `json:"serNo,omitempty"`
	TransactionCode  int64   `json:"transactionCode"`
	TransactionName  string  `json:"transactionName,omitempty"`
	EmployeeCategory string  `json:"employeeCategory"`
	Percentage       float64 `json:"percentage"`
	Year             int     `json:"year"`
}
