package holiday_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	holidayDatamodel "github.com/frahmantamala/hr-console/internal/core/datamodel/holiday"
	"github.com/frahmantamala/hr-console/internal/holiday"
)

// Mock backend for testing
type mockHolidayBackend struct {
	records     map[int64]holidayDatamodel.Record
	nextID      int64
	listError   error
	createError error
	deleteError error
	// deleteErrorAfter fails deletion once this many deletes have succeeded
	deleteErrorAfter int
	deleteCalls      int
}

func newMockHolidayBackend() *mockHolidayBackend {
	return &mockHolidayBackend{
		records:          make(map[int64]holidayDatamodel.Record),
		nextID:           1,
		deleteErrorAfter: -1,
	}
}

func (m *mockHolidayBackend) seed(date, name string, year int) int64 {
	id := m.nextID
	m.nextID++
	m.records[id] = holidayDatamodel.Record{
		HolidayID:   id,
		HolidayDate: date,
		HolidayName: name,
		Year:        year,
	}
	return id
}

func (m *mockHolidayBackend) ListHolidays(ctx context.Context, year int) ([]holidayDatamodel.Record, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	var out []holidayDatamodel.Record
	for _, rec := range m.records {
		if rec.Year == year {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *mockHolidayBackend) CreateHoliday(ctx context.Context, rec holidayDatamodel.Record) (*holidayDatamodel.Record, error) {
	if m.createError != nil {
		return nil, m.createError
	}
	rec.HolidayID = m.nextID
	m.nextID++
	m.records[rec.HolidayID] = rec
	return &rec, nil
}

func (m *mockHolidayBackend) DeleteHoliday(ctx context.Context, holidayID int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	if m.deleteErrorAfter >= 0 && m.deleteCalls >= m.deleteErrorAfter {
		return errors.New("backend unavailable")
	}
	m.deleteCalls++
	delete(m.records, holidayID)
	return nil
}

var _ = Describe("HolidayService", func() {
	var (
		service *holiday.Service
		backend *mockHolidayBackend
	)

	BeforeEach(func() {
		backend = newMockHolidayBackend()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = holiday.NewService(backend, logger)
	})

	Describe("List", func() {
		It("returns the year's records folded into ranges", func() {
			backend.seed("2025-06-01", "Eid", 2025)
			backend.seed("2025-06-02", "Eid", 2025)
			backend.seed("2025-09-23", "National Day", 2025)

			ranges, err := service.List(context.Background(), 2025)

			Expect(err).ToNot(HaveOccurred())
			Expect(ranges).To(HaveLen(2))
		})

		It("returns an empty list when the backend has no records", func() {
			ranges, err := service.List(context.Background(), 2025)

			Expect(err).ToNot(HaveOccurred())
			Expect(ranges).To(BeEmpty())
		})
	})

	Describe("CreateRange", func() {
		It("creates one backend record per day and refetches", func() {
			ranges, err := service.CreateRange(context.Background(), holiday.RangeInput{
				From: day("2025-06-01"),
				To:   day("2025-06-04"),
				Name: "Eid",
				Year: 2025,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(backend.records).To(HaveLen(4))
			Expect(ranges).To(HaveLen(1))
			Expect(ranges[0].NumberOfDays).To(Equal(4))
		})

		It("does not call the backend when validation fails", func() {
			_, err := service.CreateRange(context.Background(), holiday.RangeInput{
				From: day("2025-06-04"),
				To:   day("2025-06-01"),
				Name: "Eid",
				Year: 2025,
			})

			Expect(err).To(HaveOccurred())
			Expect(backend.records).To(BeEmpty())
		})

		It("surfaces a mid-expansion backend failure without rollback", func() {
			backend.createError = errors.New("backend unavailable")

			_, err := service.CreateRange(context.Background(), holiday.RangeInput{
				From: day("2025-06-01"),
				To:   day("2025-06-03"),
				Name: "Eid",
				Year: 2025,
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateRange", func() {
		It("deletes the old records then recreates the new range", func() {
			id1 := backend.seed("2025-06-01", "Eid", 2025)
			id2 := backend.seed("2025-06-02", "Eid", 2025)
			existing := holiday.Range{
				FromDate:   day("2025-06-01"),
				ToDate:     day("2025-06-02"),
				Name:       "Eid",
				Year:       2025,
				HolidayIDs: []int64{id1, id2},
			}

			ranges, err := service.UpdateRange(context.Background(), existing, holiday.RangeInput{
				From: day("2025-06-01"),
				To:   day("2025-06-03"),
				Name: "Eid",
				Year: 2025,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(backend.records).To(HaveLen(3))
			Expect(ranges).To(HaveLen(1))
			Expect(ranges[0].NumberOfDays).To(Equal(3))
		})

		It("leaves a partial state when recreation fails after deletion", func() {
			id := backend.seed("2025-06-01", "Eid", 2025)
			existing := holiday.Range{
				FromDate:   day("2025-06-01"),
				ToDate:     day("2025-06-01"),
				Name:       "Eid",
				Year:       2025,
				HolidayIDs: []int64{id},
			}
			backend.createError = errors.New("backend unavailable")

			_, err := service.UpdateRange(context.Background(), existing, holiday.RangeInput{
				From: day("2025-06-01"),
				To:   day("2025-06-02"),
				Name: "Eid",
				Year: 2025,
			})

			Expect(err).To(HaveOccurred())
			// old records gone, new ones never created; next fetch shows truth
			Expect(backend.records).To(BeEmpty())
		})

		It("rejects an invalid replacement before deleting anything", func() {
			id := backend.seed("2025-06-01", "Eid", 2025)
			existing := holiday.Range{
				FromDate:   day("2025-06-01"),
				ToDate:     day("2025-06-01"),
				Name:       "Eid",
				Year:       2025,
				HolidayIDs: []int64{id},
			}

			_, err := service.UpdateRange(context.Background(), existing, holiday.RangeInput{
				From: day("2025-06-05"),
				To:   day("2025-06-01"),
				Name: "Eid",
				Year: 2025,
			})

			Expect(err).To(HaveOccurred())
			Expect(backend.records).To(HaveLen(1))
		})
	})

	Describe("DeleteRange", func() {
		It("removes every record the range spans", func() {
			id1 := backend.seed("2025-06-01", "Eid", 2025)
			id2 := backend.seed("2025-06-02", "Eid", 2025)
			backend.seed("2025-09-23", "National Day", 2025)

			ranges, err := service.DeleteRange(context.Background(), holiday.Range{
				Name:       "Eid",
				Year:       2025,
				HolidayIDs: []int64{id1, id2},
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(backend.records).To(HaveLen(1))
			Expect(ranges).To(HaveLen(1))
			Expect(ranges[0].Name).To(Equal("National Day"))
		})
	})
})
