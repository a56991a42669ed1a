package breakdown

import (
	breakdownDatamodel "github.com/frahmantamala/hr-console/internal/core/datamodel/breakdown"
)

// Category is the nationality category a backend record belongs to. The two
// categories carry independent percentages and different ceilings.
type Category string

const (
	CategorySaudi   Category = "S"
	CategoryForeign Category = "F"
)

// SaudiTotalCeiling caps the summed Saudi percentage across all active rows.
// The small epsilon tolerates floating-point accumulation; the foreign sum is
// never capped (expatriate allowance stacking is legitimate).
const SaudiTotalCeiling = 100.01

// Record is one backend breakdown row for a single category.
type Record struct {
	SerNo           *int64
	TransactionCode int64
	TransactionName string
	Category        Category
	Percentage      float64
	Year            int
}

// Row is the merged frontend view: both category percentages for one
// transaction type. A category with no backend record shows 0 and keeps its
// serNo unset.
type Row struct {
	TransactionCode   int64
	TransactionName   string
	Year              int
	SaudiPercentage   float64
	ForeignPercentage float64
	SaudiSerNo        *int64
	ForeignSerNo      *int64
}

// RowEdit is a single frontend edit before it is split back into category
// records. A nil percentage means "no record for this category"; an explicit
// 0 is a real value and must be emitted.
type RowEdit struct {
	TransactionCode   int64
	TransactionName   string
	Year              int
	SaudiPercentage   *float64
	ForeignPercentage *float64
}

func FromDataModel(rec breakdownDatamodel.Record) Record {
	return Record{
		SerNo:           rec.SerNo,
		TransactionCode: rec.TransactionCode,
		TransactionName: rec.TransactionName,
		Category:        Category(rec.EmployeeCategory),
		Percentage:      rec.Percentage,
		Year:            rec.Year,
	}
}

func ToDataModel(rec Record) breakdownDatamodel.Record {
	return breakdownDatamodel.Record{
		SerNo:            rec.SerNo,
		TransactionCode:  rec.TransactionCode,
		TransactionName:  rec.TransactionName,
		EmployeeCategory: string(rec.Category),
		Percentage:       rec.Percentage,
		Year:             rec.Year,
	}
}
