// Package backendapi is the HTTP client for the external HR backend. It is
// the only package that talks to the network; the feature services see it
// through their Backend interfaces.
package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/hr-console/internal"
	"github.com/frahmantamala/hr-console/internal/approval"
	"github.com/frahmantamala/hr-console/internal/breakdown"
	breakdownDatamodel "github.com/frahmantamala/hr-console/internal/core/datamodel/breakdown"
	holidayDatamodel "github.com/frahmantamala/hr-console/internal/core/datamodel/holiday"
	requestDatamodel "github.com/frahmantamala/hr-console/internal/core/datamodel/request"
	"github.com/frahmantamala/hr-console/internal/holiday"
	"github.com/frahmantamala/hr-console/internal/status"
)

var (
	_ approval.Backend  = (*Client)(nil)
	_ breakdown.Backend = (*Client)(nil)
	_ holiday.Backend   = (*Client)(nil)
)

type Client struct {
	baseURL        string
	apiKey         string
	requestTimeout time.Duration
	httpClient     *http.Client
	logger         *slog.Logger
}

func NewClient(cfg internal.BackendConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		requestTimeout: cfg.RequestTimeout,
		httpClient:     &http.Client{},
		logger:         logger,
	}
}

// sentinels translates backend HTTP refusals into the domain errors the
// services branch on. Calls leave a field nil when the status cannot occur.
type sentinels struct {
	notFound *internal.AppError
	conflict *internal.AppError
}

// do issues one request and decodes the response body into out (unless out is
// nil). Every call carries a fresh trace ID; actor and language headers come
// from the session on the context when one is present.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, s sentinels) error {
	ctx, cancel := internal.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return internal.NewInternalError("failed to encode request body", err)
		}
		payload = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return internal.NewInternalError("failed to build backend request", err)
	}

	traceID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Trace-ID", traceID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
	if session, ok := internal.SessionFromContext(ctx); ok {
		req.Header.Set("X-Actor-ID", strconv.FormatInt(session.UserID, 10))
		if session.Language != "" {
			req.Header.Set("Accept-Language", session.Language)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend request failed",
			"error", err,
			"method", method,
			"path", path,
			"trace_id", traceID)
		return internal.NewExternalError("backend unreachable", internal.ErrCodeBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, method, path, traceID, s); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("backend response undecodable",
			"error", err,
			"method", method,
			"path", path,
			"trace_id", traceID)
		return internal.NewExternalError("malformed backend response", internal.ErrCodeUnexpectedResponse, err)
	}
	return nil
}

func (c *Client) checkStatus(resp *http.Response, method, path, traceID string, s sentinels) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	c.logger.Warn("backend refused request",
		"status_code", resp.StatusCode,
		"method", method,
		"path", path,
		"trace_id", traceID)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return internal.ErrNotAuthorized
	case http.StatusNotFound:
		if s.notFound != nil {
			return s.notFound
		}
	case http.StatusConflict:
		if s.conflict != nil {
			return s.conflict
		}
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return internal.NewExternalError(
			fmt.Sprintf("backend returned status %d", resp.StatusCode),
			internal.ErrCodeBackendUnavailable, nil)
	}
	return internal.NewExternalError(
		fmt.Sprintf("backend returned status %d", resp.StatusCode),
		internal.ErrCodeUnexpectedResponse, nil)
}

// listPayload accepts both response shapes the backend uses for collections:
// a flat JSON array, or a paging envelope whose content field may be absent
// when the page is empty.
type listPayload[T any] struct {
	items []T
}

func (p *listPayload[T]) UnmarshalJSON(data []byte) error {
	var flat []T
	if err := json.Unmarshal(data, &flat); err == nil {
		p.items = flat
		return nil
	}

	var envelope struct {
		Content []T `json:"content"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	p.items = envelope.Content
	return nil
}

func (p *listPayload[T]) records() []T {
	if p.items == nil {
		return []T{}
	}
	return p.items
}

func (c *Client) ListRequests(ctx context.Context, kind status.RequestKind) ([]requestDatamodel.Record, error) {
	query := url.Values{"kind": {string(kind)}}
	var payload listPayload[requestDatamodel.Record]
	if err := c.do(ctx, http.MethodGet, "/api/v1/requests", query, nil, &payload, sentinels{}); err != nil {
		return nil, err
	}
	return payload.records(), nil
}

func (c *Client) GetRequest(ctx context.Context, kind status.RequestKind, requestID int64) (*requestDatamodel.Record, error) {
	query := url.Values{"kind": {string(kind)}}
	path := fmt.Sprintf("/api/v1/requests/%d", requestID)
	var rec requestDatamodel.Record
	err := c.do(ctx, http.MethodGet, path, query, nil, &rec, sentinels{notFound: internal.ErrRequestNotFound})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *Client) SubmitRequest(ctx context.Context, rec requestDatamodel.SubmitRecord) (*requestDatamodel.Record, error) {
	var created requestDatamodel.Record
	err := c.do(ctx, http.MethodPost, "/api/v1/requests", nil, rec, &created, sentinels{})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DecideRequest(ctx context.Context, kind status.RequestKind, requestID int64, decision requestDatamodel.DecisionRecord) (*requestDatamodel.Record, error) {
	query := url.Values{"kind": {string(kind)}}
	path := fmt.Sprintf("/api/v1/requests/%d/decision", requestID)
	var updated requestDatamodel.Record
	err := c.do(ctx, http.MethodPost, path, query, decision, &updated, sentinels{
		notFound: internal.ErrRequestNotFound,
		conflict: internal.ErrAlreadyFinal,
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) ListBreakdowns(ctx context.Context, year int) ([]breakdownDatamodel.Record, error) {
	query := url.Values{"year": {strconv.Itoa(year)}}
	var payload listPayload[breakdownDatamodel.Record]
	if err := c.do(ctx, http.MethodGet, "/api/v1/breakdowns", query, nil, &payload, sentinels{}); err != nil {
		return nil, err
	}
	return payload.records(), nil
}

func (c *Client) SaveBreakdown(ctx context.Context, rec breakdownDatamodel.Record) (*breakdownDatamodel.Record, error) {
	var saved breakdownDatamodel.Record
	err := c.do(ctx, http.MethodPost, "/api/v1/breakdowns", nil, rec, &saved, sentinels{
		conflict: internal.ErrDuplicateTransactionType,
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (c *Client) DeleteBreakdown(ctx context.Context, serNo int64) error {
	path := fmt.Sprintf("/api/v1/breakdowns/%d", serNo)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, sentinels{notFound: internal.ErrRecordNotFound})
}

func (c *Client) ListHolidays(ctx context.Context, year int) ([]holidayDatamodel.Record, error) {
	query := url.Values{"year": {strconv.Itoa(year)}}
	var payload listPayload[holidayDatamodel.Record]
	if err := c.do(ctx, http.MethodGet, "/api/v1/holidays", query, nil, &payload, sentinels{}); err != nil {
		return nil, err
	}
	return payload.records(), nil
}

func (c *Client) CreateHoliday(ctx context.Context, rec holidayDatamodel.Record) (*holidayDatamodel.Record, error) {
	var created holidayDatamodel.Record
	err := c.do(ctx, http.MethodPost, "/api/v1/holidays", nil, rec, &created, sentinels{})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteHoliday(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/holidays/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, sentinels{notFound: internal.ErrRecordNotFound})
}
