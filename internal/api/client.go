// internal/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"

	"alcyxob/plan-builder/internal/domain"
)

const maxErrorBody = 2048 // bytes of a rejection body kept for diagnostics

// TokenSource supplies the bearer credential for each request. The credential
// itself is owned by the auth collaborator; this package only attaches it and
// escalates expiry.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken adapts a fixed bearer credential to TokenSource.
type StaticToken string

func (s StaticToken) Token() (string, error) { return string(s), nil }

// ScheduleDraft is the input for creating a schedule. IsActive is computed by
// the caller (the repository) from today's date before sending.
type ScheduleDraft struct {
	Name      string
	StartDate domain.Date
	EndDate   domain.Date
	IsActive  bool
}

// SchedulePatch is a partial schedule update. Only name and end date are
// editable after creation; the start date is immutable.
type SchedulePatch struct {
	Name     string
	EndDate  domain.Date
	IsActive bool
}

// ItemDraft is the input for creating one routine item.
type ItemDraft struct {
	RoutineID    int64
	ExerciseID   int64
	TargetSets   int
	TargetReps   int
	TargetWeight float64
	Order        int
}

// Client talks to the remote plan store. It is the only type in this module
// that issues HTTP requests. Every method maps a failure to exactly one of:
// *TransportError, *RejectedError, or ErrAuthExpired (via errors.Is). No
// method retries; create operations are not idempotent and a silent retry
// would duplicate remote entities.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     zerolog.Logger
	now        func() time.Time
}

// NewClient builds a client for the store rooted at baseURL. The timeout is
// the only cancellation layer beneath context: a hung request fails instead
// of hanging its UI affordance forever.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		logger:     logger.With().Str("component", "api").Logger(),
		now:        time.Now,
	}
}

// ListExercises fetches the exercise library.
func (c *Client) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	var payload []exercisePayload
	if err := c.do(ctx, "list exercises", http.MethodGet, "/exercises/", nil, &payload); err != nil {
		return nil, err
	}
	exercises := make([]domain.Exercise, 0, len(payload))
	for _, p := range payload {
		ex, err := p.toDomain()
		if err != nil {
			// Quarantine the record rather than poisoning the library.
			c.logger.Warn().Err(err).Msg("skipping malformed exercise record")
			continue
		}
		exercises = append(exercises, ex)
	}
	return exercises, nil
}

// ListSchedules fetches all schedules with their nested routines and items.
// Malformed records are quarantined (logged and skipped), not propagated.
func (c *Client) ListSchedules(ctx context.Context) ([]domain.Schedule, error) {
	var payload []schedulePayload
	if err := c.do(ctx, "list schedules", http.MethodGet, "/schedules/", nil, &payload); err != nil {
		return nil, err
	}
	schedules := make([]domain.Schedule, 0, len(payload))
	for _, p := range payload {
		s, err := p.toDomain()
		if err != nil {
			c.logger.Warn().Err(err).Msg("skipping malformed schedule record")
			continue
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}

// CreateSchedule persists a new schedule and returns it with the
// server-assigned id.
func (c *Client) CreateSchedule(ctx context.Context, draft ScheduleDraft) (domain.Schedule, error) {
	const op = "create schedule"
	body := createSchedulePayload{
		Name:      draft.Name,
		StartDate: draft.StartDate.String(),
		EndDate:   optionalDate(draft.EndDate),
		IsActive:  draft.IsActive,
	}
	var payload schedulePayload
	if err := c.do(ctx, op, http.MethodPost, "/schedules/", body, &payload); err != nil {
		return domain.Schedule{}, err
	}
	created, err := payload.toDomain()
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return created, nil
}

// UpdateSchedule applies a partial update and returns the server's view of
// the schedule, nested routines included.
func (c *Client) UpdateSchedule(ctx context.Context, id int64, patch SchedulePatch) (domain.Schedule, error) {
	const op = "update schedule"
	body := patchSchedulePayload{
		Name:     patch.Name,
		EndDate:  optionalDate(patch.EndDate),
		IsActive: patch.IsActive,
	}
	var payload schedulePayload
	path := fmt.Sprintf("/schedules/%d/", id)
	if err := c.do(ctx, op, http.MethodPatch, path, body, &payload); err != nil {
		return domain.Schedule{}, err
	}
	updated, err := payload.toDomain()
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return updated, nil
}

// CreateRoutine persists a routine shell (no items) under a schedule and
// returns it with the server-assigned id.
func (c *Client) CreateRoutine(ctx context.Context, scheduleID int64, name, dayOfWeek string) (domain.Routine, error) {
	const op = "create routine"
	body := createRoutinePayload{Schedule: scheduleID, Name: name, DayOfWeek: dayOfWeek}
	var payload routinePayload
	if err := c.do(ctx, op, http.MethodPost, "/routines/create/", body, &payload); err != nil {
		return domain.Routine{}, err
	}
	created, err := payload.toDomain()
	if err != nil {
		return domain.Routine{}, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return created, nil
}

// CreateItem persists one routine item and returns it with the
// server-assigned id.
func (c *Client) CreateItem(ctx context.Context, draft ItemDraft) (domain.RoutineItem, error) {
	const op = "create item"
	body := createItemPayload{
		Routine:      draft.RoutineID,
		Exercise:     draft.ExerciseID,
		TargetSets:   draft.TargetSets,
		TargetReps:   draft.TargetReps,
		TargetWeight: draft.TargetWeight,
		Order:        draft.Order,
	}
	var payload itemPayload
	if err := c.do(ctx, op, http.MethodPost, "/items/create/", body, &payload); err != nil {
		return domain.RoutineItem{}, err
	}
	created, err := payload.toDomain()
	if err != nil {
		return domain.RoutineItem{}, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return created, nil
}

// DeleteRoutine removes a routine; the store cascades the delete to the
// routine's items.
func (c *Client) DeleteRoutine(ctx context.Context, routineID int64) error {
	path := fmt.Sprintf("/routines/%d/", routineID)
	return c.do(ctx, "delete routine", http.MethodDelete, path, nil, nil)
}

// do issues one request and maps the outcome onto the error taxonomy.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := checkNotExpired(token, c.now()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request completed")

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", op, ErrAuthExpired)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		limited, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RejectedError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(limited))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// checkNotExpired escalates an already-expired JWT bearer credential without
// spending a round trip on a guaranteed 401. Credentials that do not parse as
// JWTs pass through; the server stays authoritative for those.
func checkNotExpired(token string, now time.Time) error {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(now) {
		return ErrAuthExpired
	}
	return nil
}
