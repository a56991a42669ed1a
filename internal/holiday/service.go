package holiday

import (
	"context"
	"log/slog"

	holidayDatamodel "github.com/frahmantamala/hr-console/internal/core/datamodel/holiday"
)

// Backend is the slice of the external HR API this service drives. The
// backend stores only single-date records; range semantics live here.
type Backend interface {
	ListHolidays(ctx context.Context, year int) ([]holidayDatamodel.Record, error)
	CreateHoliday(ctx context.Context, rec holidayDatamodel.Record) (*holidayDatamodel.Record, error)
	DeleteHoliday(ctx context.Context, holidayID int64) error
}

// Service consolidates holiday records for display and expands submitted
// ranges back into backend rows. It keeps no cache: every mutation is
// followed by a refetch of the authoritative list.
type Service struct {
	backend Backend
	logger  *slog.Logger
}

func NewService(backend Backend, logger *slog.Logger) *Service {
	return &Service{backend: backend, logger: logger}
}

// List fetches the year's records and folds them into display ranges.
func (s *Service) List(ctx context.Context, year int) ([]Range, error) {
	records, err := s.fetch(ctx, year)
	if err != nil {
		return nil, err
	}
	return GroupConsecutive(records), nil
}

// CreateRange expands the submitted range into one backend record per day.
// A failure mid-way leaves the already-created days in place; the caller
// observes the true state on the next fetch.
func (s *Service) CreateRange(ctx context.Context, input RangeInput) ([]Range, error) {
	records, err := Expand(input)
	if err != nil {
		s.logger.Error("holiday range validation failed", "error", err, "holiday_name", input.Name)
		return nil, err
	}

	for _, rec := range records {
		if _, err := s.backend.CreateHoliday(ctx, ToDataModel(rec)); err != nil {
			s.logger.Error("failed to create holiday record",
				"error", err,
				"holiday_name", input.Name,
				"holiday_date", rec.Date)
			return nil, err
		}
	}

	s.logger.Info("holiday range created",
		"holiday_name", input.Name,
		"days", len(records))

	return s.List(ctx, input.Year)
}

// UpdateRange edits by delete-all-then-recreate, since the backend has no
// range concept. This is not atomic: a failure between the delete and the
// recreate leaves the holiday set inconsistent until the caller resubmits.
func (s *Service) UpdateRange(ctx context.Context, existing Range, input RangeInput) ([]Range, error) {
	if _, err := Expand(input); err != nil {
		return nil, err
	}

	for _, id := range existing.HolidayIDs {
		if err := s.backend.DeleteHoliday(ctx, id); err != nil {
			s.logger.Error("failed to delete holiday record during range edit",
				"error", err,
				"holiday_id", id,
				"holiday_name", existing.Name)
			return nil, err
		}
	}

	return s.CreateRange(ctx, input)
}

// DeleteRange removes every backend record the range spans.
func (s *Service) DeleteRange(ctx context.Context, r Range) ([]Range, error) {
	for _, id := range r.HolidayIDs {
		if err := s.backend.DeleteHoliday(ctx, id); err != nil {
			s.logger.Error("failed to delete holiday record",
				"error", err,
				"holiday_id", id,
				"holiday_name", r.Name)
			return nil, err
		}
	}

	s.logger.Info("holiday range deleted",
		"holiday_name", r.Name,
		"days", len(r.HolidayIDs))

	return s.List(ctx, r.Year)
}

func (s *Service) fetch(ctx context.Context, year int) ([]Record, error) {
	rows, err := s.backend.ListHolidays(ctx, year)
	if err != nil {
		s.logger.Error("failed to list holidays", "error", err, "year", year)
		return nil, err
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec, err := FromDataModel(row)
		if err != nil {
			s.logger.Error("failed to parse holiday record", "error", err, "holiday_id", row.HolidayID)
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
