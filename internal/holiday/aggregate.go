package holiday

import (
	"sort"

	errors "github.com/frahmantamala/hr-console/internal"
	"github.com/frahmantamala/hr-console/internal/core/common/dates"
	"github.com/frahmantamala/hr-console/internal/core/common/validation"
)

// GroupConsecutive folds single-date records into contiguous ranges. Records
// are sorted by date first; adjacent records join the open range only while
// the next date is exactly one day later and the name matches. A gap or a
// name change starts a new range.
func GroupConsecutive(records []Record) []Range {
	if len(records) == 0 {
		return []Range{}
	}

	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var ranges []Range
	current := newRange(sorted[0])
	for _, rec := range sorted[1:] {
		if rec.Name == current.Name && dates.IsNextDay(current.ToDate, rec.Date) {
			current.ToDate = rec.Date
			current.HolidayIDs = append(current.HolidayIDs, rec.ID)
			continue
		}
		ranges = append(ranges, finishRange(current))
		current = newRange(rec)
	}
	ranges = append(ranges, finishRange(current))
	return ranges
}

func newRange(rec Record) Range {
	return Range{
		FromDate:   rec.Date,
		ToDate:     rec.Date,
		Name:       rec.Name,
		Year:       rec.Year,
		HolidayIDs: []int64{rec.ID},
	}
}

func finishRange(r Range) Range {
	r.NumberOfDays = dates.DaysBetween(r.FromDate, r.ToDate) + 1
	return r
}

// Expand is the inverse operation: one record per calendar day in the
// inclusive [From, To] interval, all sharing the range's name and year. The
// emitted records carry no backend identifiers.
func Expand(input RangeInput) ([]Record, error) {
	if err := validateRangeInput(input); err != nil {
		return nil, err
	}

	var records []Record
	for day := dates.Day(input.From); !day.After(dates.Day(input.To)); day = dates.AddDays(day, 1) {
		records = append(records, Record{
			Date: day,
			Name: input.Name,
			Year: input.Year,
		})
	}
	return records, nil
}

func validateRangeInput(input RangeInput) *errors.AppError {
	if err := validation.ValidateDateRange("fromDate", "toDate", input.From, input.To); err != nil {
		return err
	}
	validator := validation.NewValidator()
	validator.Field("holidayName", input.Name).Required()
	return validator.Validate()
}
