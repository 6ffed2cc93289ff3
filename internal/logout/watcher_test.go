package logout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltworks/internal/notify"
	"voltworks/internal/session"
	"voltworks/pkg/logger"
	"voltworks/pkg/model"
)

type memRepo struct {
	records map[string]*session.Record
}

func (m *memRepo) Insert(_ context.Context, record *session.Record) error {
	m.records[record.ID] = record
	return nil
}

func (m *memRepo) FindByID(_ context.Context, id string) (*session.Record, error) {
	record, ok := m.records[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return record, nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func (m *memRepo) DeleteByUserID(_ context.Context, userID string) ([]string, error) {
	var ids []string
	for id, record := range m.records {
		if record.User.ID == userID {
			ids = append(ids, id)
			delete(m.records, id)
		}
	}
	return ids, nil
}

func newWatcher(t *testing.T) (*Watcher, *memRepo, *notify.Center) {
	t.Helper()
	repo := &memRepo{records: make(map[string]*session.Record)}
	log := logger.New(logger.Config{Level: "error", Service: "test"})
	store := session.NewStore(repo, []byte("secret"), time.Hour, log)
	center := notify.NewCenter(time.Minute)
	t.Cleanup(center.Stop)

	watcher := &Watcher{store: store, center: center, log: log}
	return watcher, repo, center
}

func seed(t *testing.T, repo *memRepo, sessionID, userID string) {
	t.Helper()
	require.NoError(t, repo.Insert(context.Background(), &session.Record{
		ID:        sessionID,
		User:      model.User{ID: userID, UserType: model.UserTypeCustomer},
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}))
}

func TestHandle_EndsSessionsAndNotifies(t *testing.T) {
	watcher, repo, center := newWatcher(t)
	seed(t, repo, "s-1", "u-1")
	seed(t, repo, "s-2", "u-1")
	seed(t, repo, "s-3", "u-2")

	watcher.handle(context.Background(), []byte(`{"user_id":"u-1","reason":"revoked"}`))

	assert.Len(t, repo.records, 1, "only the other user's session survives")

	first := center.Drain("s-1")
	require.Len(t, first, 1)
	assert.Equal(t, ForcedLogoutMessage, first[0].Message)
	assert.Equal(t, notify.StyleDestructive, first[0].Style)
	assert.Len(t, center.Drain("s-2"), 1)
	assert.Empty(t, center.Drain("s-3"))
}

func TestHandle_RedeliveryNotifiesAgain(t *testing.T) {
	watcher, repo, center := newWatcher(t)
	seed(t, repo, "s-1", "u-1")

	payload := []byte(`{"user_id":"u-1"}`)
	watcher.handle(context.Background(), payload)
	seed(t, repo, "s-1", "u-1")
	watcher.handle(context.Background(), payload)

	assert.Len(t, center.Drain("s-1"), 2)
}

func TestHandle_SkipsBadPayloads(t *testing.T) {
	watcher, repo, center := newWatcher(t)
	seed(t, repo, "s-1", "u-1")

	watcher.handle(context.Background(), []byte(`not json`))
	watcher.handle(context.Background(), []byte(`{"reason":"no user"}`))

	assert.Len(t, repo.records, 1)
	assert.Empty(t, center.Drain("s-1"))
}
