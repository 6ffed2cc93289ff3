// Package logout consumes session-invalidated events from the auth
// platform and ends the matching dashboard sessions. Users forced out
// see a destructive notification on their next poll and are redirected
// to login by the route guard.
package logout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"voltworks/internal/notify"
	"voltworks/internal/session"
	"voltworks/pkg/logger"
)

const ForcedLogoutMessage = "Your session was ended by an administrator."

// Event is the payload published when a user's sessions are revoked
// upstream.
type Event struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason,omitempty"`
}

type Watcher struct {
	reader *kafka.Reader
	store  *session.Store
	center *notify.Center
	log    *logger.Logger
}

type WatcherConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

func NewWatcher(cfg WatcherConfig, store *session.Store, center *notify.Center, log *logger.Logger) *Watcher {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		MinBytes:    1,
		MaxBytes:    1 << 20,
		MaxWait:     500 * time.Millisecond,
		StartOffset: kafka.LastOffset,
		Logger:      kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error("kafka reader error", "detail", msg)
		}),
	})

	return &Watcher{
		reader: reader,
		store:  store,
		center: center,
		log:    log,
	}
}

// Run consumes events until ctx is cancelled. Malformed payloads are
// logged and skipped; the offset is committed either way so a bad
// message cannot wedge the group.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		msg, err := w.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			w.log.Error("failed to fetch session event", "error", err)
			time.Sleep(time.Second)
			continue
		}

		w.handle(ctx, msg.Value)

		if err := w.reader.CommitMessages(ctx, msg); err != nil {
			w.log.Error("failed to commit session event offset", "error", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, payload []byte) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		w.log.Warn("skipping malformed session event", "error", err)
		return
	}
	if event.UserID == "" {
		w.log.Warn("skipping session event without user_id")
		return
	}

	ended, err := w.store.InvalidateUser(ctx, event.UserID)
	if err != nil {
		w.log.Error("failed to invalidate sessions",
			"user_id", event.UserID,
			"error", err)
		return
	}

	// One notification per ended session per delivered event. If the
	// broker redelivers, the user sees the banner again.
	for _, sessionID := range ended {
		w.center.Push(sessionID, ForcedLogoutMessage, notify.StyleDestructive)
	}

	w.log.Info("forced logout applied",
		"user_id", event.UserID,
		"reason", event.Reason,
		"sessions_ended", len(ended))
}

func (w *Watcher) Close() error {
	return w.reader.Close()
}
