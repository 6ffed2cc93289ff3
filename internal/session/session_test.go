package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltworks/pkg/logger"
	"voltworks/pkg/model"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func customerToken(t *testing.T, userID string) string {
	return signToken(t, jwt.MapClaims{
		"user_id":   userID,
		"user_type": "customer",
		"name":      "Linh Tran",
		"email":     "linh@example.com",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
}

type fakeRepo struct {
	mu      sync.Mutex
	records map[string]*Record
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]*Record)}
}

func (f *fakeRepo) Insert(_ context.Context, record *Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[record.ID] = record
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, id)
	return nil
}

func (f *fakeRepo) DeleteByUserID(_ context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id, record := range f.records {
		if record.User.ID == userID {
			ids = append(ids, id)
			delete(f.records, id)
		}
	}
	return ids, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Service: "test"})
}

func TestParseToken_Valid(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id":   "u-1",
		"user_type": "employee",
		"role":      "technician",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, model.UserTypeEmployee, claims.UserType)
	assert.Equal(t, model.RoleTechnician, claims.Role)
}

func TestParseToken_BearerPrefix(t *testing.T) {
	token := customerToken(t, "u-2")
	_, err := ParseToken(testSecret, "Bearer "+token)
	assert.NoError(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id":   "u-1",
		"user_type": "customer",
		"exp":       time.Now().Add(-time.Hour).Unix(),
	})

	_, err := ParseToken(testSecret, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(testSecret, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_MissingUserType(t *testing.T) {
	token := signToken(t, jwt.MapClaims{
		"user_id": "u-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	_, err := ParseToken(testSecret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestStore_LoginAndResolve(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo, testSecret, time.Hour, testLogger())

	var events []Event
	unsubscribe := store.Subscribe(func(ev Event) { events = append(events, ev) })
	defer unsubscribe()

	login := &model.LoginResponse{
		Token: customerToken(t, "u-9"),
		User:  model.User{ID: "u-9", Name: "Linh Tran", UserType: model.UserTypeCustomer},
	}

	record, err := store.Login(context.Background(), login)
	require.NoError(t, err)
	require.NotEmpty(t, record.ID)

	snapshot := store.Resolve(context.Background(), record.ID)
	assert.True(t, snapshot.Authenticated)
	require.NotNil(t, snapshot.User)
	assert.Equal(t, "u-9", snapshot.User.ID)

	require.Len(t, events, 1)
	assert.Equal(t, ReasonLogin, events[0].Reason)
	assert.True(t, events[0].Snapshot.Authenticated)
}

func TestStore_LoginRejectsMismatchedUser(t *testing.T) {
	store := NewStore(newFakeRepo(), testSecret, time.Hour, testLogger())

	login := &model.LoginResponse{
		Token: customerToken(t, "u-1"),
		User:  model.User{ID: "someone-else", UserType: model.UserTypeCustomer},
	}

	_, err := store.Login(context.Background(), login)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestStore_ResolveUnknownSession(t *testing.T) {
	store := NewStore(newFakeRepo(), testSecret, time.Hour, testLogger())

	snapshot := store.Resolve(context.Background(), "missing")
	assert.False(t, snapshot.Authenticated)
	assert.Nil(t, snapshot.User)

	empty := store.Resolve(context.Background(), "")
	assert.False(t, empty.Authenticated)
}

func TestStore_ResolveExpiredSession(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo, testSecret, time.Hour, testLogger())

	record := &Record{
		ID:        "s-old",
		User:      model.User{ID: "u-1", UserType: model.UserTypeCustomer},
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.Insert(context.Background(), record))

	var events []Event
	defer store.Subscribe(func(ev Event) { events = append(events, ev) })()

	snapshot := store.Resolve(context.Background(), "s-old")
	assert.False(t, snapshot.Authenticated)

	// The stale record is gone and subscribers heard about it.
	_, err := repo.FindByID(context.Background(), "s-old")
	assert.ErrorIs(t, err, ErrNotFound)
	require.Len(t, events, 1)
	assert.Equal(t, ReasonExpired, events[0].Reason)
}

func TestStore_Logout(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo, testSecret, time.Hour, testLogger())

	login := &model.LoginResponse{
		Token: customerToken(t, "u-3"),
		User:  model.User{ID: "u-3", UserType: model.UserTypeCustomer},
	}
	record, err := store.Login(context.Background(), login)
	require.NoError(t, err)

	var events []Event
	defer store.Subscribe(func(ev Event) { events = append(events, ev) })()

	require.NoError(t, store.Logout(context.Background(), record.ID))

	snapshot := store.Resolve(context.Background(), record.ID)
	assert.False(t, snapshot.Authenticated)
	require.Len(t, events, 1)
	assert.Equal(t, ReasonLogout, events[0].Reason)
	assert.Nil(t, events[0].Snapshot.User)
}

func TestStore_InvalidateUserEndsEverySession(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo, testSecret, time.Hour, testLogger())

	for i := 0; i < 2; i++ {
		login := &model.LoginResponse{
			Token: customerToken(t, "u-7"),
			User:  model.User{ID: "u-7", UserType: model.UserTypeCustomer},
		}
		_, err := store.Login(context.Background(), login)
		require.NoError(t, err)
	}

	var events []Event
	defer store.Subscribe(func(ev Event) { events = append(events, ev) })()

	ids, err := store.InvalidateUser(context.Background(), "u-7")
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Len(t, events, 2)
	for _, ev := range events {
		assert.Equal(t, ReasonForced, ev.Reason)
		assert.False(t, ev.Snapshot.Authenticated)
	}
}

func TestStore_UnsubscribeStopsEvents(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo, testSecret, time.Hour, testLogger())

	count := 0
	unsubscribe := store.Subscribe(func(Event) { count++ })
	unsubscribe()
	unsubscribe() // second call is a no-op

	login := &model.LoginResponse{
		Token: customerToken(t, "u-5"),
		User:  model.User{ID: "u-5", UserType: model.UserTypeCustomer},
	}
	_, err := store.Login(context.Background(), login)
	require.NoError(t, err)

	assert.Equal(t, 0, count)
}
