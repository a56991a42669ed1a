package holiday

import (
	"time"

	"github.com/frahmantamala/hr-console/internal/core/common/dates"
	holidayDatamodel "github.com/frahmantamala/hr-console/internal/core/datamodel/holiday"
)

// Record is one backend holiday row with its date parsed into a calendar day.
type Record struct {
	ID   int64
	Date time.Time
	Name string
	Year int
}

// Range is the merged view the console shows: N consecutive single-date
// records folded into one row. HolidayIDs keeps the backend identifiers in
// date order; range-aware deletion needs every one of them.
type Range struct {
	FromDate     time.Time
	ToDate       time.Time
	Name         string
	Year         int
	HolidayIDs   []int64
	NumberOfDays int
}

// RangeInput is a submitted range before it is expanded into backend records.
type RangeInput struct {
	From time.Time
	To   time.Time
	Name string
	Year int
}

func FromDataModel(rec holidayDatamodel.Record) (Record, error) {
	date, err := dates.ParseDate(rec.HolidayDate)
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:   rec.HolidayID,
		Date: date,
		Name: rec.HolidayName,
		Year: rec.Year,
	}, nil
}

func ToDataModel(rec Record) holidayDatamodel.Record {
	return holidayDatamodel.Record{
		HolidayID:   rec.ID,
		HolidayDate: dates.FormatDate(rec.Date),
		HolidayName: rec.Name,
		Year:        rec.Year,
	}
}
