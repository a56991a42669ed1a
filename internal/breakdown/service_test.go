package breakdown_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hr-console/internal"
	"github.com/frahmantamala/hr-console/internal/breakdown"
	breakdownDatamodel "github.com/frahmantamala/hr-console/internal/core/datamodel/breakdown"
)

// Mock backend for testing; saves are idempotent by (code, category) like
// the real backend.
type mockBreakdownBackend struct {
	records     map[int64]breakdownDatamodel.Record
	nextSerNo   int64
	listError   error
	saveError   error
	deleteError error
	// saveErrorAfter fails once this many saves have succeeded
	saveErrorAfter int
	saveCalls      int
}

func newMockBreakdownBackend() *mockBreakdownBackend {
	return &mockBreakdownBackend{
		records:        make(map[int64]breakdownDatamodel.Record),
		nextSerNo:      1,
		saveErrorAfter: -1,
	}
}

func (m *mockBreakdownBackend) seed(code int64, category string, percentage float64, year int) int64 {
	serNo := m.nextSerNo
	m.nextSerNo++
	m.records[serNo] = breakdownDatamodel.Record{
		SerNo:            &serNo,
		TransactionCode:  code,
		EmployeeCategory: category,
		Percentage:       percentage,
		Year:             year,
	}
	return serNo
}

func (m *mockBreakdownBackend) ListBreakdowns(ctx context.Context, year int) ([]breakdownDatamodel.Record, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	var out []breakdownDatamodel.Record
	for _, rec := range m.records {
		if rec.Year == year {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *mockBreakdownBackend) SaveBreakdown(ctx context.Context, rec breakdownDatamodel.Record) (*breakdownDatamodel.Record, error) {
	if m.saveError != nil {
		return nil, m.saveError
	}
	if m.saveErrorAfter >= 0 && m.saveCalls >= m.saveErrorAfter {
		return nil, errors.New("backend unavailable")
	}
	m.saveCalls++

	// create-or-update keyed by (transactionCode, employeeCategory)
	for serNo, existing := range m.records {
		if existing.TransactionCode == rec.TransactionCode && existing.EmployeeCategory == rec.EmployeeCategory && existing.Year == rec.Year {
			rec.SerNo = &serNo
			m.records[serNo] = rec
			return &rec, nil
		}
	}
	serNo := m.nextSerNo
	m.nextSerNo++
	rec.SerNo = &serNo
	m.records[serNo] = rec
	return &rec, nil
}

func (m *mockBreakdownBackend) DeleteBreakdown(ctx context.Context, serNo int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	if _, ok := m.records[serNo]; !ok {
		return internal.ErrRecordNotFound
	}
	delete(m.records, serNo)
	return nil
}

var _ = Describe("BreakdownService", func() {
	var (
		service *breakdown.Service
		backend *mockBreakdownBackend
	)

	BeforeEach(func() {
		backend = newMockBreakdownBackend()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = breakdown.NewService(backend, logger)
	})

	Describe("List", func() {
		It("merges the backend record set into one row per transaction type", func() {
			backend.seed(10, "S", 5, 2025)
			backend.seed(10, "F", 20, 2025)
			backend.seed(20, "F", 15, 2025)

			rows, err := service.List(context.Background(), 2025)

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].TransactionCode).To(Equal(int64(10)))
			Expect(rows[0].SaudiPercentage).To(Equal(5.0))
			Expect(rows[0].ForeignPercentage).To(Equal(20.0))
			Expect(rows[1].SaudiSerNo).To(BeNil())
		})
	})

	Describe("Create", func() {
		It("splits the edit into category records and refetches", func() {
			rows, err := service.Create(context.Background(), breakdown.RowEdit{
				TransactionCode:   10,
				Year:              2025,
				SaudiPercentage:   pct(5),
				ForeignPercentage: pct(20),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(backend.records).To(HaveLen(2))
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].SaudiSerNo).ToNot(BeNil())
			Expect(rows[0].ForeignSerNo).ToNot(BeNil())
		})

		It("rejects a duplicate transaction type", func() {
			backend.seed(10, "S", 5, 2025)

			_, err := service.Create(context.Background(), breakdown.RowEdit{
				TransactionCode: 10,
				Year:            2025,
				SaudiPercentage: pct(3),
			})

			Expect(err).To(Equal(internal.ErrDuplicateTransactionType))
		})

		It("rejects a create breaching the Saudi ceiling before any save", func() {
			backend.seed(10, "S", 97, 2025)

			_, err := service.Create(context.Background(), breakdown.RowEdit{
				TransactionCode: 20,
				Year:            2025,
				SaudiPercentage: pct(4),
			})

			Expect(err).To(HaveOccurred())
			Expect(internal.IsCode(err, internal.ErrCodeSaudiTotalExceeded)).To(BeTrue())
			Expect(backend.records).To(HaveLen(1))
		})

		It("surfaces a partial split failure without rollback", func() {
			backend.saveErrorAfter = 1

			_, err := service.Create(context.Background(), breakdown.RowEdit{
				TransactionCode:   10,
				Year:              2025,
				SaudiPercentage:   pct(5),
				ForeignPercentage: pct(20),
			})

			Expect(err).To(HaveOccurred())
			// the first category record stays; reconciliation is the caller's
			// next fetch
			Expect(backend.records).To(HaveLen(1))
		})
	})

	Describe("Update", func() {
		It("rewrites percentages excluding the row itself from the ceiling", func() {
			backend.seed(10, "S", 60, 2025)
			backend.seed(20, "S", 40, 2025)

			rows, err := service.Update(context.Background(), breakdown.RowEdit{
				TransactionCode: 20,
				Year:            2025,
				SaudiPercentage: pct(35),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[1].SaudiPercentage).To(Equal(35.0))
		})

		It("fails when the row does not exist", func() {
			_, err := service.Update(context.Background(), breakdown.RowEdit{
				TransactionCode: 99,
				Year:            2025,
				SaudiPercentage: pct(1),
			})

			Expect(err).To(Equal(internal.ErrRecordNotFound))
		})

		It("keeps an explicit zero as a real value", func() {
			backend.seed(10, "S", 5, 2025)

			rows, err := service.Update(context.Background(), breakdown.RowEdit{
				TransactionCode: 10,
				Year:            2025,
				SaudiPercentage: pct(0),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(rows[0].SaudiPercentage).To(BeZero())
			Expect(rows[0].SaudiSerNo).ToNot(BeNil())
		})
	})

	Describe("Delete", func() {
		It("deletes both category records when serNos are known", func() {
			s := backend.seed(10, "S", 5, 2025)
			f := backend.seed(10, "F", 20, 2025)

			rows, err := service.Delete(context.Background(), breakdown.Row{
				TransactionCode: 10,
				Year:            2025,
				SaudiSerNo:      &s,
				ForeignSerNo:    &f,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(backend.records).To(BeEmpty())
			Expect(rows).To(BeEmpty())
		})

		It("falls back to scanning the backend set when serNos are unknown", func() {
			backend.seed(10, "S", 5, 2025)
			backend.seed(10, "F", 20, 2025)

			rows, err := service.Delete(context.Background(), breakdown.Row{
				TransactionCode: 10,
				Year:            2025,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(backend.records).To(BeEmpty())
			Expect(rows).To(BeEmpty())
		})

		It("gives up with RecordNotFound when nothing resolves", func() {
			_, err := service.Delete(context.Background(), breakdown.Row{
				TransactionCode: 10,
				Year:            2025,
			})

			Expect(err).To(Equal(internal.ErrRecordNotFound))
		})
	})
})
