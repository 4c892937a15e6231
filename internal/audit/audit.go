// Package audit publishes operational audit events (login attempts, backups)
// to a message broker. Auditing is optional: a nil Recorder is a no-op, so
// callers never need to branch on whether a broker is configured.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/op/go-logging"
)

const (
	EventLoginSuccess = "login_success"
	EventLoginFailure = "login_failure"
	EventBackup       = "backup"

	publishTimeout = 5 * time.Second
)

// Event is the JSON payload published for every audited action.
type Event struct {
	Event     string `json:"event"`
	UserID    int    `json:"user_id,omitempty"`
	Email     string `json:"email,omitempty"`
	Outcome   string `json:"outcome,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Backend defines the broker-agnostic publish operations used by the Recorder.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// Recorder serialises audit events and publishes them on a fixed channel.
// Publish failures are logged and never surfaced to the caller.
type Recorder struct {
	backend Backend
	channel string
	log     *logging.Logger
}

// NewRecorder constructs a Recorder over the provided backend.
func NewRecorder(backend Backend, channel string, log *logging.Logger) *Recorder {
	return &Recorder{backend: backend, channel: channel, log: log}
}

// LoginSuccess records a successful authentication.
func (r *Recorder) LoginSuccess(ctx context.Context, userID int, email string) {
	r.record(ctx, Event{
		Event:   EventLoginSuccess,
		UserID:  userID,
		Email:   email,
		Outcome: "success",
	})
}

// LoginFailure records a failed authentication with its cause. The password
// is never part of the event.
func (r *Recorder) LoginFailure(ctx context.Context, email, reason string) {
	r.record(ctx, Event{
		Event:   EventLoginFailure,
		Email:   email,
		Outcome: reason,
	})
}

// Backup records a completed backup run.
func (r *Recorder) Backup(ctx context.Context) {
	r.record(ctx, Event{
		Event:   EventBackup,
		Outcome: "success",
	})
}

// Close closes the underlying backend.
func (r *Recorder) Close() error {
	if r == nil || r.backend == nil {
		return nil
	}
	return r.backend.Close()
}

func (r *Recorder) record(ctx context.Context, event Event) {
	if r == nil || r.backend == nil {
		return
	}

	event.Timestamp = time.Now().Format(time.RFC3339)
	data, err := json.Marshal(event)
	if err != nil {
		r.log.Errorf("audit: encodage de l'événement %s impossible: %v", event.Event, err)
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	attrs := map[string]string{"event": event.Event}
	if _, err := r.backend.Publish(publishCtx, r.channel, data, attrs); err != nil {
		r.log.Errorf("audit: publication de l'événement %s échouée: %v", event.Event, err)
	}
}
