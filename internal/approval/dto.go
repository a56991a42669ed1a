package approval

import (
	"time"

	errors "github.com/frahmantamala/hr-console/internal"
	"github.com/frahmantamala/hr-console/internal/core/common/dates"
	"github.com/frahmantamala/hr-console/internal/core/common/validation"
	requestDatamodel "github.com/frahmantamala/hr-console/internal/core/datamodel/request"
	"github.com/frahmantamala/hr-console/internal/status"
)

// SubmitDTO is one kind-specific submission. Validation runs before any
// network call; a failing DTO never reaches the backend.
type SubmitDTO interface {
	Kind() status.RequestKind
	Validate() *errors.AppError
	ToSubmitRecord() requestDatamodel.SubmitRecord
}

type SubmitLeaveDTO struct {
	RequesterID int64     `json:"requester_id" validate:"required"`
	FromDate    time.Time `json:"from_date" validate:"required"`
	ToDate      time.Time `json:"to_date" validate:"required"`
	Reason      string    `json:"reason" validate:"required"`
}

func (SubmitLeaveDTO) Kind() status.RequestKind { return status.KindLeave }

func (dto SubmitLeaveDTO) Validate() *errors.AppError {
	if err := validation.ValidateDateRange("fromDate", "toDate", dto.FromDate, dto.ToDate); err != nil {
		return err
	}
	validator := validation.NewValidator()
	validator.Field("requesterId", dto.RequesterID).Required()
	validator.Field("reason", dto.Reason).Required()
	return validator.Validate()
}

func (dto SubmitLeaveDTO) ToSubmitRecord() requestDatamodel.SubmitRecord {
	return requestDatamodel.SubmitRecord{
		RequesterID: dto.RequesterID,
		Kind:        string(status.KindLeave),
		FromDate:    dates.FormatDate(dto.FromDate),
		ToDate:      dates.FormatDate(dto.ToDate),
		Reason:      dto.Reason,
	}
}

type SubmitTransferDTO struct {
	RequesterID          int64 `json:"requester_id" validate:"required"`
	SourceProjectID      int64 `json:"source_project_id" validate:"required"`
	DestinationProjectID int64 `json:"destination_project_id" validate:"required"`
}

func (SubmitTransferDTO) Kind() status.RequestKind { return status.KindTransfer }

func (dto SubmitTransferDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("requesterId", dto.RequesterID).Required()
	validator.Field("sourceProjectId", dto.SourceProjectID).Required()
	validator.Field("destinationProjectId", dto.DestinationProjectID).Required().
		Custom(func(value interface{}) *errors.AppError {
			if v, ok := value.(int64); ok && v != 0 && v == dto.SourceProjectID {
				return errors.NewValidationFieldError("destinationProjectId",
					"destination project must differ from source project",
					errors.ErrCodeValidationFailed)
			}
			return nil
		})
	return validator.Validate()
}

func (dto SubmitTransferDTO) ToSubmitRecord() requestDatamodel.SubmitRecord {
	source := dto.SourceProjectID
	destination := dto.DestinationProjectID
	return requestDatamodel.SubmitRecord{
		RequesterID:          dto.RequesterID,
		Kind:                 string(status.KindTransfer),
		SourceProjectID:      &source,
		DestinationProjectID: &destination,
	}
}

type SubmitAllowanceDTO struct {
	RequesterID  int64   `json:"requester_id" validate:"required"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	IsPercentage bool    `json:"is_percentage"`
	Reason       string  `json:"reason" validate:"required"`
}

func (SubmitAllowanceDTO) Kind() status.RequestKind { return status.KindAllowance }

func (dto SubmitAllowanceDTO) Validate() *errors.AppError {
	if err := validation.ValidatePercentage("amount", dto.Amount, dto.IsPercentage); err != nil {
		return err
	}
	validator := validation.NewValidator()
	validator.Field("requesterId", dto.RequesterID).Required()
	validator.Field("reason", dto.Reason).Required()
	return validator.Validate()
}

func (dto SubmitAllowanceDTO) ToSubmitRecord() requestDatamodel.SubmitRecord {
	amount := dto.Amount
	return requestDatamodel.SubmitRecord{
		RequesterID:  dto.RequesterID,
		Kind:         string(status.KindAllowance),
		Amount:       &amount,
		IsPercentage: dto.IsPercentage,
		Reason:       dto.Reason,
	}
}

type SubmitPostponementDTO struct {
	RequesterID      int64     `json:"requester_id" validate:"required"`
	InstallmentRef   string    `json:"installment_ref" validate:"required"`
	OriginalDueMonth time.Time `json:"original_due_month" validate:"required"`
	NewDueMonth      time.Time `json:"new_due_month" validate:"required"`
}

func (SubmitPostponementDTO) Kind() status.RequestKind { return status.KindLoanPostponement }

func (dto SubmitPostponementDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("requesterId", dto.RequesterID).Required()
	validator.Field("installmentRef", dto.InstallmentRef).Required()
	validator.Field("originalDueMonth", dto.OriginalDueMonth).Required()
	validator.Field("newDueMonth", dto.NewDueMonth).Required().
		AfterMonth(dto.OriginalDueMonth, "originalDueMonth")
	return validator.Validate()
}

func (dto SubmitPostponementDTO) ToSubmitRecord() requestDatamodel.SubmitRecord {
	return requestDatamodel.SubmitRecord{
		RequesterID:      dto.RequesterID,
		Kind:             string(status.KindLoanPostponement),
		InstallmentRef:   dto.InstallmentRef,
		OriginalDueMonth: dates.FormatMonth(dto.OriginalDueMonth),
		NewDueMonth:      dates.FormatMonth(dto.NewDueMonth),
	}
}
