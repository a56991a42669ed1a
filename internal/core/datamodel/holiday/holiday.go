// Package holiday holds the backend wire shape for holiday records. The
// backend stores one record per calendar day; multi-day holidays only exist
// as consecutive single-date rows.
package holiday

type Record struct {
	HolidayID   int64  `json:"holidayId,omitempty"`
	HolidayDate string `json:"holidayDate"`
	HolidayName string `json:"holidayName"`
	Year        int    `json:"year"`
}
