package approval

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/hr-console/internal"
	requestDatamodel "github.com/frahmantamala/hr-console/internal/core/datamodel/request"
	"github.com/frahmantamala/hr-console/internal/status"
)

// Backend is the slice of the external HR API the workflow drives. Routing
// (who approves next) lives entirely behind it.
type Backend interface {
	ListRequests(ctx context.Context, kind status.RequestKind) ([]requestDatamodel.Record, error)
	GetRequest(ctx context.Context, kind status.RequestKind, requestID int64) (*requestDatamodel.Record, error)
	SubmitRequest(ctx context.Context, rec requestDatamodel.SubmitRecord) (*requestDatamodel.Record, error)
	DecideRequest(ctx context.Context, kind status.RequestKind, requestID int64, decision requestDatamodel.DecisionRecord) (*requestDatamodel.Record, error)
}

// Service runs the approval workflow for all request kinds. It never
// mutates local state optimistically: a decision's result is whatever the
// backend reports when asked again, and screens refetch the list after every
// action. Requests cannot be cancelled once submitted, only decided.
type Service struct {
	backend Backend
	logger  *slog.Logger
}

func NewService(backend Backend, logger *slog.Logger) *Service {
	return &Service{backend: backend, logger: logger}
}

// List returns the kind's requests for display. Unknown status vocabulary
// defaults to NEW here; only mutation paths propagate it.
func (s *Service) List(ctx context.Context, kind status.RequestKind) ([]*Request, error) {
	rows, err := s.backend.ListRequests(ctx, kind)
	if err != nil {
		s.logger.Error("failed to list approval requests", "error", err, "kind", string(kind))
		return nil, err
	}

	requests := make([]*Request, 0, len(rows))
	for i := range rows {
		req, err := FromDataModelForDisplay(ctx, &rows[i])
		if err != nil {
			s.logger.Error("failed to parse approval request",
				"error", err,
				"request_id", rows[i].RequestID,
				"kind", string(kind))
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// Submit validates the kind-specific payload and creates the request in NEW.
// Validation failures never reach the backend.
func (s *Service) Submit(ctx context.Context, dto SubmitDTO) (*Request, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("request submission rejected by validation",
			"error", err,
			"kind", string(dto.Kind()))
		return nil, err
	}

	rec, err := s.backend.SubmitRequest(ctx, dto.ToSubmitRecord())
	if err != nil {
		s.logger.Error("failed to submit approval request", "error", err, "kind", string(dto.Kind()))
		return nil, err
	}

	req, err := FromDataModel(rec)
	if err != nil {
		return nil, err
	}

	s.logger.Info("approval request submitted",
		"request_id", req.ID,
		"kind", string(req.Kind),
		"requester_id", req.RequesterID)

	return req, nil
}

// Decide records an approver action. The current state is fetched first and
// run through the state machine, so a terminal request fails fast with
// AlreadyFinal before any mutation reaches the backend; authorization is the
// backend's call and its refusal is surfaced verbatim, terminal for this
// attempt. The returned request is refetched, never locally patched.
func (s *Service) Decide(ctx context.Context, kind status.RequestKind, requestID, actorID int64, outcome Outcome, note string) (*Request, error) {
	rec, err := s.backend.GetRequest(ctx, kind, requestID)
	if err != nil {
		s.logger.Error("failed to fetch request before decision",
			"error", err,
			"request_id", requestID,
			"kind", string(kind))
		return nil, err
	}

	current, err := FromDataModel(rec)
	if err != nil {
		return nil, err
	}

	if _, err := NextStatus(current.Status, outcome, current.Level, current.TotalLevels); err != nil {
		s.logger.Warn("decision rejected by workflow rules",
			"error", err,
			"request_id", requestID,
			"status", string(current.Status))
		return nil, err
	}

	if actorID == current.RequesterID {
		s.logger.Warn("requester attempted to decide own request",
			"request_id", requestID,
			"actor_id", actorID)
		return nil, errors.ErrNotAuthorized
	}

	if _, err := s.backend.DecideRequest(ctx, kind, requestID, requestDatamodel.DecisionRecord{
		ActorID: actorID,
		Outcome: string(outcome),
		Note:    note,
	}); err != nil {
		s.logger.Error("decision failed at backend",
			"error", err,
			"request_id", requestID,
			"outcome", string(outcome))
		return nil, err
	}

	fresh, err := s.backend.GetRequest(ctx, kind, requestID)
	if err != nil {
		s.logger.Error("failed to refetch request after decision",
			"error", err,
			"request_id", requestID)
		return nil, err
	}

	req, err := FromDataModel(fresh)
	if err != nil {
		return nil, err
	}

	s.logger.Info("approval decision recorded",
		"request_id", requestID,
		"outcome", string(outcome),
		"status", string(req.Status))

	return req, nil
}
