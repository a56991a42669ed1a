package breakdown

import (
	"fmt"
	"sort"

	errors "github.com/frahmantamala/hr-console/internal"
)

// Merge groups backend records by transaction code, producing at most one
// row per code. Rows come back sorted by code, so merging the same record
// set twice yields identical output.
func Merge(records []Record) []Row {
	byCode := make(map[int64]*Row)
	for _, rec := range records {
		row, ok := byCode[rec.TransactionCode]
		if !ok {
			row = &Row{
				TransactionCode: rec.TransactionCode,
				TransactionName: rec.TransactionName,
				Year:            rec.Year,
			}
			byCode[rec.TransactionCode] = row
		}
		if row.TransactionName == "" {
			row.TransactionName = rec.TransactionName
		}

		switch rec.Category {
		case CategorySaudi:
			row.SaudiPercentage = rec.Percentage
			row.SaudiSerNo = rec.SerNo
		case CategoryForeign:
			row.ForeignPercentage = rec.Percentage
			row.ForeignSerNo = rec.SerNo
		}
	}

	rows := make([]Row, 0, len(byCode))
	for _, row := range byCode {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].TransactionCode < rows[j].TransactionCode
	})
	return rows
}

// Split turns one frontend edit back into up to two backend records. A nil
// percentage omits that category entirely; an explicit 0 still emits the
// record.
func Split(edit RowEdit) []Record {
	var records []Record
	if edit.SaudiPercentage != nil {
		records = append(records, Record{
			TransactionCode: edit.TransactionCode,
			TransactionName: edit.TransactionName,
			Category:        CategorySaudi,
			Percentage:      *edit.SaudiPercentage,
			Year:            edit.Year,
		})
	}
	if edit.ForeignPercentage != nil {
		records = append(records, Record{
			TransactionCode: edit.TransactionCode,
			TransactionName: edit.TransactionName,
			Category:        CategoryForeign,
			Percentage:      *edit.ForeignPercentage,
			Year:            edit.Year,
		})
	}
	return records
}

// ValidateSaudiTotal checks the candidate edit against the Saudi ceiling.
// The sum runs over all existing rows except excludeCode (the row being
// edited), plus the candidate's own Saudi percentage. Checked at write time
// only; the total is never stored.
func ValidateSaudiTotal(candidate RowEdit, existing []Row, excludeCode *int64) *errors.AppError {
	total := 0.0
	for _, row := range existing {
		if excludeCode != nil && row.TransactionCode == *excludeCode {
			continue
		}
		total += row.SaudiPercentage
	}
	if candidate.SaudiPercentage != nil {
		total += *candidate.SaudiPercentage
	}

	if total > SaudiTotalCeiling {
		message := fmt.Sprintf("Saudi percentages would total %.2f%%, exceeding the 100%% ceiling", total)
		return errors.NewValidationError(message, errors.ErrCodeSaudiTotalExceeded)
	}
	return nil
}
