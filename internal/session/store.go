package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"voltworks/pkg/logger"
	"voltworks/pkg/model"
)

// Snapshot is the session state as of one read. Writes replace the whole
// snapshot, never parts of it, so readers can never observe a half-applied
// login or logout.
type Snapshot struct {
	User          *model.User `json:"user"`
	Authenticated bool        `json:"authenticated"`
	Loading       bool        `json:"loading"`
}

type EventReason string

const (
	ReasonLogin   EventReason = "login"
	ReasonLogout  EventReason = "logout"
	ReasonExpired EventReason = "expired"
	ReasonForced  EventReason = "forced-logout"
)

type Event struct {
	SessionID string
	Reason    EventReason
	Snapshot  Snapshot
}

type Subscriber func(Event)

// Store owns every signed-in session. It is constructed once at process start
// and passed by reference; there is no package-level instance, which keeps
// test doubles trivial.
type Store struct {
	repo   Repository
	secret []byte
	ttl    time.Duration
	log    *logger.Logger

	mu      sync.Mutex
	subs    map[int]Subscriber
	nextSub int
}

func NewStore(repo Repository, secret []byte, ttl time.Duration, log *logger.Logger) *Store {
	return &Store{
		repo:   repo,
		secret: secret,
		ttl:    ttl,
		log:    log,
		subs:   make(map[int]Subscriber),
	}
}

// Subscribe registers a listener for session events. The returned function
// unsubscribes; calling it twice is harmless.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// Login validates the auth service's token, persists a new session record and
// notifies subscribers. The returned record ID goes into the session cookie.
func (s *Store) Login(ctx context.Context, login *model.LoginResponse) (*Record, error) {
	claims, err := ParseToken(s.secret, login.Token)
	if err != nil {
		return nil, err
	}
	if claims.UserID != login.User.ID {
		return nil, ErrInvalidToken
	}

	now := time.Now().UTC()
	record := &Record{
		ID:        uuid.NewString(),
		Token:     login.Token,
		User:      login.User,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		return nil, err
	}

	s.log.Info("Session created",
		"session_id", record.ID,
		"user_id", record.User.ID,
		"user_type", record.User.UserType,
		"role", record.User.Role,
	)

	user := record.User
	s.notify(Event{
		SessionID: record.ID,
		Reason:    ReasonLogin,
		Snapshot:  Snapshot{User: &user, Authenticated: true},
	})
	return record, nil
}

// Resolve turns a session ID into a snapshot. Missing, unknown or expired
// sessions all resolve to the unauthenticated snapshot; expiry also removes
// the stale record and notifies subscribers.
func (s *Store) Resolve(ctx context.Context, sessionID string) Snapshot {
	if sessionID == "" {
		return Snapshot{}
	}

	record, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		if err != ErrNotFound {
			s.log.Error("Session lookup failed", "session_id", sessionID, "error", err)
		}
		return Snapshot{}
	}

	if time.Now().After(record.ExpiresAt) {
		if err := s.repo.Delete(ctx, sessionID); err != nil {
			s.log.Warn("Failed to delete expired session", "session_id", sessionID, "error", err)
		}
		s.notify(Event{SessionID: sessionID, Reason: ReasonExpired, Snapshot: Snapshot{}})
		return Snapshot{}
	}

	user := record.User
	return Snapshot{User: &user, Authenticated: true}
}

// Token returns the auth token backing a session, for relaying the logout
// to the auth service.
func (s *Store) Token(ctx context.Context, sessionID string) (string, error) {
	record, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return record.Token, nil
}

// Logout removes the session and notifies subscribers with the replaced
// (empty) snapshot.
func (s *Store) Logout(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.log.Info("Session ended", "session_id", sessionID)
	s.notify(Event{SessionID: sessionID, Reason: ReasonLogout, Snapshot: Snapshot{}})
	return nil
}

// InvalidateUser force-ends every session of one user, e.g. when the auth
// service reports the token revoked. One event is emitted per ended session.
func (s *Store) InvalidateUser(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.repo.DeleteByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		s.log.Warn("Session force-invalidated", "session_id", id, "user_id", userID)
		s.notify(Event{SessionID: id, Reason: ReasonForced, Snapshot: Snapshot{}})
	}
	return ids, nil
}
