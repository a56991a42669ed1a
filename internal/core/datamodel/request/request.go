// Package request holds the backend wire shapes for approval requests.
// Status arrives either as single-letter legacy codes or full enum names
// depending on the endpoint; the status package is the only place allowed to
// interpret it.
package request

// Record is one approval request as the backend returns it. Payload fields
// are kind-specific; endpoints leave the irrelevant ones empty.
type Record struct {
	RequestID         int64  `json:"requestId"`
	RequesterID       int64  `json:"requesterId"`
	RequesterName     string `json:"requesterName,omitempty"`
	Kind              string `json:"requestKind"`
	Status            string `json:"status"`
	ApprovalLevel     int    `json:"approvalLevel"`
	TotalLevels       int    `json:"totalLevels"`
	CurrentApproverID *int64 `json:"currentApproverId,omitempty"`
	NextApproverName  string `json:"nextApproverName,omitempty"`

	// leave
	FromDate string `json:"fromDate,omitempty"`
	ToDate   string `json:"toDate,omitempty"`
	Reason   string `json:"reason,omitempty"`

	// transfer
	SourceProjectID      *int64 `json:"sourceProjectId,omitempty"`
	DestinationProjectID *int64 `json:"destinationProjectId,omitempty"`

	// allowance
	Amount       *float64 `json:"amount,omitempty"`
	IsPercentage bool     `json:"isPercentage,omitempty"`

	// loan postponement
	InstallmentRef   string `json:"installmentRef,omitempty"`
	OriginalDueMonth string `json:"originalDueMonth,omitempty"`
	NewDueMonth      string `json:"newDueMonth,omitempty"`

	// audit fields carry full timestamps, unlike payload dates
	CreatedDate  string `json:"createdDate,omitempty"`
	ApprovalDate string `json:"approvalDate,omitempty"`
}

// SubmitRecord is the creation payload. The backend assigns the request ID
// and the initial routing.
type SubmitRecord struct {
	RequesterID int64  `json:"requesterId"`
	Kind        string `json:"requestKind"`

	FromDate string `json:"fromDate,omitempty"`
	ToDate   string `json:"toDate,omitempty"`
	Reason   string `json:"reason,omitempty"`

	SourceProjectID      *int64 `json:"sourceProjectId,omitempty"`
	DestinationProjectID *int64 `json:"destinationProjectId,omitempty"`

	Amount       *float64 `json:"amount,omitempty"`
	IsPercentage bool     `json:"isPercentage,omitempty"`

	InstallmentRef   string `json:"installmentRef,omitempty"`
	OriginalDueMonth string `json:"originalDueMonth,omitempty"`
	NewDueMonth      string `json:"newDueMonth,omitempty"`
}

// DecisionRecord is an approver action on a pending request.
type DecisionRecord struct {
	ActorID int64  `json:"actorId"`
	Outcome string `json:"outcome"`
	Note    string `json:"note,omitempty"`
}
