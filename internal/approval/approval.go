package approval

import (
	"context"
	"time"

	errors "github.com/frahmantamala/hr-console/internal"
	"github.com/frahmantamala/hr-console/internal/core/common/dates"
	requestDatamodel "github.com/frahmantamala/hr-console/internal/core/datamodel/request"
	"github.com/frahmantamala/hr-console/internal/status"
)

type Outcome string

const (
	OutcomeApprove Outcome = "APPROVE"
	OutcomeReject  Outcome = "REJECT"
)

// Request is one approval request with its status already normalized. The
// approver fields are display hints; the backend owns the routing chain.
type Request struct {
	ID                int64
	RequesterID       int64
	RequesterName     string
	Kind              status.RequestKind
	Status            status.Status
	Level             int
	TotalLevels       int
	CurrentApproverID *int64
	NextApproverName  string
	Payload           Payload
	CreatedDate       time.Time
	ApprovalDate      *time.Time
}

// Payload carries the kind-specific fields of a request.
type Payload interface {
	Kind() status.RequestKind
}

type LeavePayload struct {
	FromDate time.Time
	ToDate   time.Time
	Reason   string
}

func (LeavePayload) Kind() status.RequestKind { return status.KindLeave }

// Days is the inclusive day count of the leave.
func (p LeavePayload) Days() int {
	return dates.DaysBetween(p.FromDate, p.ToDate) + 1
}

type TransferPayload struct {
	SourceProjectID      int64
	DestinationProjectID int64
}

func (TransferPayload) Kind() status.RequestKind { return status.KindTransfer }

type AllowancePayload struct {
	Amount       float64
	IsPercentage bool
	Reason       string
}

func (AllowancePayload) Kind() status.RequestKind { return status.KindAllowance }

type PostponementPayload struct {
	InstallmentRef   string
	OriginalDueMonth time.Time
	NewDueMonth      time.Time
}

func (PostponementPayload) Kind() status.RequestKind { return status.KindLoanPostponement }

// NextStatus is the workflow state machine. NEW and IN_PROCESS both accept
// decisions; a rejection is immediately terminal at any level, while an
// approval only becomes terminal once the last routing level signs off.
// Terminal states accept nothing.
func NextStatus(current status.Status, outcome Outcome, level, totalLevels int) (status.Status, error) {
	if current.IsTerminal() {
		return current, errors.ErrAlreadyFinal
	}
	switch outcome {
	case OutcomeReject:
		return status.StatusRejected, nil
	case OutcomeApprove:
		if level < totalLevels {
			return status.StatusInProcess, nil
		}
		return status.StatusApproved, nil
	default:
		return current, errors.NewValidationFieldError("outcome", "outcome must be APPROVE or REJECT", errors.ErrCodeValidationFailed)
	}
}

// FromDataModel converts a backend record on a mutation path: an unknown
// status propagates instead of defaulting, so workflow state is never
// silently corrupted.
func FromDataModel(rec *requestDatamodel.Record) (*Request, error) {
	canonical, err := status.Normalize(rec.Status, status.RequestKind(rec.Kind))
	if err != nil {
		return nil, err
	}
	return fromRecord(rec, canonical)
}

// FromDataModelForDisplay is the read-path variant: unknown status defaults
// to NEW and is logged.
func FromDataModelForDisplay(ctx context.Context, rec *requestDatamodel.Record) (*Request, error) {
	canonical := status.NormalizeForDisplay(ctx, rec.Status, status.RequestKind(rec.Kind))
	return fromRecord(rec, canonical)
}

func fromRecord(rec *requestDatamodel.Record, canonical status.Status) (*Request, error) {
	payload, err := payloadFromRecord(rec)
	if err != nil {
		return nil, err
	}

	req := &Request{
		ID:                rec.RequestID,
		RequesterID:       rec.RequesterID,
		RequesterName:     rec.RequesterName,
		Kind:              status.RequestKind(rec.Kind),
		Status:            canonical,
		Level:             rec.ApprovalLevel,
		TotalLevels:       rec.TotalLevels,
		CurrentApproverID: rec.CurrentApproverID,
		NextApproverName:  rec.NextApproverName,
		Payload:           payload,
	}

	if rec.CreatedDate != "" {
		created, err := parseTimestamp(rec.CreatedDate)
		if err != nil {
			return nil, err
		}
		req.CreatedDate = created
	}
	if rec.ApprovalDate != "" {
		decided, err := parseTimestamp(rec.ApprovalDate)
		if err != nil {
			return nil, err
		}
		req.ApprovalDate = &decided
	}
	return req, nil
}

func payloadFromRecord(rec *requestDatamodel.Record) (Payload, error) {
	switch status.RequestKind(rec.Kind) {
	case status.KindLeave:
		from, err := dates.ParseDate(rec.FromDate)
		if err != nil {
			return nil, err
		}
		to, err := dates.ParseDate(rec.ToDate)
		if err != nil {
			return nil, err
		}
		return LeavePayload{FromDate: from, ToDate: to, Reason: rec.Reason}, nil

	case status.KindTransfer:
		payload := TransferPayload{}
		if rec.SourceProjectID != nil {
			payload.SourceProjectID = *rec.SourceProjectID
		}
		if rec.DestinationProjectID != nil {
			payload.DestinationProjectID = *rec.DestinationProjectID
		}
		return payload, nil

	case status.KindAllowance:
		payload := AllowancePayload{IsPercentage: rec.IsPercentage, Reason: rec.Reason}
		if rec.Amount != nil {
			payload.Amount = *rec.Amount
		}
		return payload, nil

	case status.KindLoanPostponement:
		original, err := dates.ParseMonth(rec.OriginalDueMonth)
		if err != nil {
			return nil, err
		}
		updated, err := dates.ParseMonth(rec.NewDueMonth)
		if err != nil {
			return nil, err
		}
		return PostponementPayload{
			InstallmentRef:   rec.InstallmentRef,
			OriginalDueMonth: original,
			NewDueMonth:      updated,
		}, nil

	default:
		return nil, errors.NewExternalError("unknown request kind "+rec.Kind, errors.ErrCodeUnexpectedResponse, nil)
	}
}

// Audit fields arrive as full timestamps, payload dates as plain days.
func parseTimestamp(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return dates.ParseDate(value)
}
