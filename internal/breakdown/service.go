package breakdown

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/hr-console/internal"
	breakdownDatamodel "github.com/frahmantamala/hr-console/internal/core/datamodel/breakdown"
)

// Backend is the slice of the external HR API this service drives. Saves are
// idempotent on the backend side, keyed by (transactionCode, employeeCategory).
type Backend interface {
	ListBreakdowns(ctx context.Context, year int) ([]breakdownDatamodel.Record, error)
	SaveBreakdown(ctx context.Context, rec breakdownDatamodel.Record) (*breakdownDatamodel.Record, error)
	DeleteBreakdown(ctx context.Context, serNo int64) error
}

// Service merges the two category record sets into display rows and splits
// edits back. No cache is kept; every mutation refetches the authoritative
// set. A partial split submission (one category saved, the other failed) is
// not rolled back; the caller reconciles on the next fetch.
type Service struct {
	backend Backend
	logger  *slog.Logger
}

func NewService(backend Backend, logger *slog.Logger) *Service {
	return &Service{backend: backend, logger: logger}
}

// List fetches the year's records and merges them into one row per
// transaction type.
func (s *Service) List(ctx context.Context, year int) ([]Row, error) {
	records, err := s.fetch(ctx, year)
	if err != nil {
		return nil, err
	}
	return Merge(records), nil
}

// Create adds a row for a new transaction type. The backend re-checks the
// duplicate key on save.
func (s *Service) Create(ctx context.Context, edit RowEdit) ([]Row, error) {
	rows, err := s.List(ctx, edit.Year)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row.TransactionCode == edit.TransactionCode {
			s.logger.Warn("breakdown create rejected: transaction type exists",
				"transaction_code", edit.TransactionCode,
				"year", edit.Year)
			return nil, errors.ErrDuplicateTransactionType
		}
	}

	if err := ValidateSaudiTotal(edit, rows, nil); err != nil {
		s.logger.Warn("breakdown create rejected: saudi ceiling",
			"transaction_code", edit.TransactionCode,
			"error", err)
		return nil, err
	}

	if err := s.save(ctx, Split(edit)); err != nil {
		return nil, err
	}
	return s.List(ctx, edit.Year)
}

// Update rewrites the percentages of an existing row, excluding the row
// itself from the ceiling sum.
func (s *Service) Update(ctx context.Context, edit RowEdit) ([]Row, error) {
	rows, err := s.List(ctx, edit.Year)
	if err != nil {
		return nil, err
	}

	var existing *Row
	for i := range rows {
		if rows[i].TransactionCode == edit.TransactionCode {
			existing = &rows[i]
			break
		}
	}
	if existing == nil {
		return nil, errors.ErrRecordNotFound
	}

	if err := ValidateSaudiTotal(edit, rows, &edit.TransactionCode); err != nil {
		s.logger.Warn("breakdown update rejected: saudi ceiling",
			"transaction_code", edit.TransactionCode,
			"error", err)
		return nil, err
	}

	records := Split(edit)
	for i := range records {
		switch records[i].Category {
		case CategorySaudi:
			records[i].SerNo = existing.SaudiSerNo
		case CategoryForeign:
			records[i].SerNo = existing.ForeignSerNo
		}
	}

	if err := s.save(ctx, records); err != nil {
		return nil, err
	}
	return s.List(ctx, edit.Year)
}

// Delete removes both category records behind a row. Unknown serNos fall
// back to scanning the full backend record set by (code, category, year);
// when nothing resolves at all, the row cannot be deleted.
func (s *Service) Delete(ctx context.Context, row Row) ([]Row, error) {
	targets := make(map[Category]*int64)
	targets[CategorySaudi] = row.SaudiSerNo
	targets[CategoryForeign] = row.ForeignSerNo

	if targets[CategorySaudi] == nil || targets[CategoryForeign] == nil {
		records, err := s.fetch(ctx, row.Year)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if rec.TransactionCode != row.TransactionCode || rec.Year != row.Year {
				continue
			}
			if targets[rec.Category] == nil {
				targets[rec.Category] = rec.SerNo
			}
		}
	}

	var serNos []int64
	for _, serNo := range targets {
		if serNo != nil {
			serNos = append(serNos, *serNo)
		}
	}
	if len(serNos) == 0 {
		s.logger.Warn("breakdown delete failed: no backend records resolved",
			"transaction_code", row.TransactionCode,
			"year", row.Year)
		return nil, errors.ErrRecordNotFound
	}

	for _, serNo := range serNos {
		if err := s.backend.DeleteBreakdown(ctx, serNo); err != nil {
			s.logger.Error("failed to delete breakdown record",
				"error", err,
				"ser_no", serNo,
				"transaction_code", row.TransactionCode)
			return nil, err
		}
	}

	s.logger.Info("breakdown row deleted",
		"transaction_code", row.TransactionCode,
		"records", len(serNos))

	return s.List(ctx, row.Year)
}

func (s *Service) save(ctx context.Context, records []Record) error {
	for _, rec := range records {
		if _, err := s.backend.SaveBreakdown(ctx, ToDataModel(rec)); err != nil {
			s.logger.Error("failed to save breakdown record",
				"error", err,
				"transaction_code", rec.TransactionCode,
				"category", string(rec.Category))
			return err
		}
	}
	return nil
}

func (s *Service) fetch(ctx context.Context, year int) ([]Record, error) {
	rows, err := s.backend.ListBreakdowns(ctx, year)
	if err != nil {
		s.logger.Error("failed to list breakdown records", "error", err, "year", year)
		return nil, err
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, FromDataModel(row))
	}
	return records, nil
}
