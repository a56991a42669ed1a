// Package status is the mandatory boundary translation for the backend's
// mixed status vocabularies. Older endpoints answer with single-letter codes
// (N/A/R/P), newer ones with enum names; nothing downstream of this package
// may branch on the raw strings.
package status

import (
	"context"

	"github.com/frahmantamala/hr-console/internal"
	"github.com/frahmantamala/hr-console/pkg/logger"
)

type Status string

const (
	StatusNew       Status = "NEW"
	StatusInProcess Status = "IN_PROCESS"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
)

type RequestKind string

const (
	KindLeave            RequestKind = "LEAVE"
	KindTransfer         RequestKind = "TRANSFER"
	KindAllowance        RequestKind = "ALLOWANCE"
	KindLoanPostponement RequestKind = "LOAN_POSTPONEMENT"
)

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

func (s Status) IsPending() bool {
	return s == StatusNew || s == StatusInProcess
}

// mapping is case-sensitive exact match against the known vocabularies.
var mapping = map[string]Status{
	"N":         StatusNew,
	"NEW":       StatusNew,
	"PENDING":   StatusNew,
	"P":         StatusInProcess,
	"INPROCESS": StatusInProcess,
	"A":         StatusApproved,
	"APPROVED":  StatusApproved,
	"R":         StatusRejected,
	"REJECTED":  StatusRejected,
}

// Normalize maps a raw backend status onto the canonical enum. Unknown input
// fails with an UnrecognizedStatus error carrying the original string; write
// paths must propagate it.
func Normalize(raw string, kind RequestKind) (Status, error) {
	if canonical, ok := mapping[raw]; ok {
		return canonical, nil
	}
	return "", internal.NewUnrecognizedStatusError(raw)
}

// NormalizeForDisplay is the read-path variant: unknown vocabulary defaults
// to NEW and is logged, never surfaced. Using it on a mutation path would
// silently corrupt workflow state.
func NormalizeForDisplay(ctx context.Context, raw string, kind RequestKind) Status {
	canonical, err := Normalize(raw, kind)
	if err != nil {
		logger.From(ctx).Warn("unrecognized backend status, defaulting for display",
			"raw_status", raw,
			"request_kind", string(kind))
		return StatusNew
	}
	return canonical
}
