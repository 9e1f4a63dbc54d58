package status

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"careerflix/backend/internal/model"
	"careerflix/backend/internal/store"
)

// EventChannel is the Redis pub/sub channel for status-change events.
const EventChannel = "EVENT_STATUS_CHANGED"

// Publisher fans a status-change event out to interested consumers.
// The Redis client satisfies this through RedisPublisher; a nil publisher
// disables events.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// Service encapsulates status updates and history recording.
// It is transport-agnostic: used by the HTTP handlers.
type Service struct {
	store *store.Store
	pub   Publisher
	now   func() time.Time
}

// NewService returns a configured Service. now is injectable for tests.
func NewService(st *store.Store, pub Publisher, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: st, pub: pub, now: now}
}

// Of returns the tracked status for jobID, defaulting to "Not Applied".
// Unknown stored values also read as the default rather than erroring.
func (s *Service) Of(ctx context.Context, userID string, jobID int) (Status, error) {
	m, err := s.store.StatusMap(ctx, userID)
	if err != nil {
		return "", err
	}
	st, err := Parse(m[jobID])
	if err != nil {
		return StatusNotApplied, nil
	}
	return st, nil
}

// Lookup returns a snapshot of the status map as a plain lookup function for
// the filter pipeline. Store errors degrade to an empty map — a filter must
// never fail the whole dashboard.
func (s *Service) Lookup(ctx context.Context, userID string) func(jobID int) string {
	m, err := s.store.StatusMap(ctx, userID)
	if err != nil {
		slog.Warn("status map read failed, treating all jobs as Not Applied", "err", err)
		m = map[int]string{}
	}
	return func(jobID int) string {
		if st, err := Parse(m[jobID]); err == nil {
			return string(st)
		}
		return string(StatusNotApplied)
	}
}

// Set updates jobID's status. Transitions into Applied/Rejected/Selected are
// appended to the bounded history log and published as an event; the event
// publish is non-fatal.
func (s *Service) Set(ctx context.Context, userID string, job model.Job, newStatusStr string) (Status, error) {
	newStatus, err := Parse(newStatusStr)
	if err != nil {
		return "", &ValidationError{Msg: err.Error()}
	}

	if err := s.store.SetStatus(ctx, userID, job.ID, string(newStatus)); err != nil {
		return "", fmt.Errorf("set status: %w", err)
	}

	if !Recorded(newStatus) {
		return newStatus, nil
	}

	entry := model.StatusEntry{
		JobID:     job.ID,
		Title:     job.Title,
		Company:   job.Company,
		Status:    string(newStatus),
		Timestamp: s.now().UTC(),
	}
	if err := s.store.PushStatusHistory(ctx, userID, entry); err != nil {
		return "", fmt.Errorf("push status history: %w", err)
	}

	if s.pub != nil {
		event, _ := json.Marshal(map[string]string{
			"type":   EventChannel,
			"userId": userID,
			"jobId":  fmt.Sprintf("%d", job.ID),
			"status": string(newStatus),
		})
		if err := s.pub.Publish(ctx, EventChannel, event); err != nil {
			slog.Warn("publish status event failed", "err", err)
		}
	}

	return newStatus, nil
}

// History returns the bounded status history, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]model.StatusEntry, error) {
	return s.store.StatusHistory(ctx, userID)
}
