package watcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"neptis/internal/config"
	"neptis/internal/interfaces"
	"neptis/internal/mocks"
	"neptis/internal/models"
	"neptis/internal/testutil"
)

type fixture struct {
	w        *Watcher
	store    *mocks.MockProfileStore
	api      *mocks.MockServerAPI
	notifier *mocks.MockNotifier
	now      time.Time
	created  int
}

func setupWatcher(t *testing.T, profiles ...models.Profile) *fixture {
	f := &fixture{
		store:    mocks.NewMockProfileStore(t),
		api:      mocks.NewMockServerAPI(t),
		notifier: mocks.NewMockNotifier(t),
		now:      time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC),
	}
	f.store.EXPECT().ListProfiles(mock.Anything).Return(profiles, nil).Maybe()

	clients := func(p *models.Profile) (interfaces.ServerAPI, error) {
		f.created++
		return f.api, nil
	}
	f.w = New(config.WatcherConfig{Interval: 15 * time.Second, MaxErrors: 5, Blacklist: 5 * time.Minute},
		f.store, clients, f.notifier)
	f.w.now = func() time.Time { return f.now }
	return f
}

func TestPoll_NotifiesUnreadOnce(t *testing.T) {
	f := setupWatcher(t, *testutil.CreateTestProfile())
	msg := models.Message{ID: "m1", Subject: "Backup done", Text: "photos backed up"}

	f.api.EXPECT().Login(mock.Anything, "bob", "secret").Return(&models.LoginResponse{Token: "t"}, nil).Once()
	f.api.EXPECT().ListMessages(mock.Anything, true).Return([]models.Message{msg}, nil).Twice()
	f.notifier.EXPECT().NotifyMessage("home", msg).Return(nil).Once()

	f.w.Poll(context.Background())
	f.w.Poll(context.Background())

	assert.Equal(t, 1, f.created, "session is reused")
}

func TestPoll_SkipsProfilesWithoutCredentials(t *testing.T) {
	f := setupWatcher(t, *testutil.CreateTestProfile(func(p *models.Profile) { p.Password = "" }))

	f.w.Poll(context.Background())

	assert.Empty(t, f.w.sessions)
	assert.Zero(t, f.created)
}

func TestPoll_LoginFailureRetriesNextPoll(t *testing.T) {
	f := setupWatcher(t, *testutil.CreateTestProfile())

	f.api.EXPECT().Login(mock.Anything, "bob", "secret").Return(nil, errors.New("connection refused")).Once()
	f.w.Poll(context.Background())
	assert.Empty(t, f.w.sessions)

	f.api.EXPECT().Login(mock.Anything, "bob", "secret").Return(&models.LoginResponse{}, nil).Once()
	f.api.EXPECT().ListMessages(mock.Anything, true).Return(nil, nil).Once()
	f.w.Poll(context.Background())
	assert.Len(t, f.w.sessions, 1)
}

func TestPoll_DropsAndBlacklistsAfterErrors(t *testing.T) {
	f := setupWatcher(t, *testutil.CreateTestProfile())

	f.api.EXPECT().Login(mock.Anything, "bob", "secret").Return(&models.LoginResponse{}, nil).Once()
	f.api.EXPECT().ListMessages(mock.Anything, true).Return(nil, errors.New("timeout")).Times(5)

	for i := 0; i < 5; i++ {
		f.w.Poll(context.Background())
	}
	assert.Empty(t, f.w.sessions)

	// still blacklisted
	f.now = f.now.Add(4 * time.Minute)
	f.w.Poll(context.Background())
	assert.Empty(t, f.w.sessions)
	assert.Equal(t, 1, f.created)

	f.now = f.now.Add(2 * time.Minute)
	f.api.EXPECT().Login(mock.Anything, "bob", "secret").Return(&models.LoginResponse{}, nil).Once()
	f.api.EXPECT().ListMessages(mock.Anything, true).Return(nil, nil).Once()
	f.w.Poll(context.Background())
	assert.Len(t, f.w.sessions, 1)
	assert.Equal(t, 2, f.created)
}

func TestPoll_SuccessResetsErrorCount(t *testing.T) {
	f := setupWatcher(t, *testutil.CreateTestProfile())

	f.api.EXPECT().Login(mock.Anything, "bob", "secret").Return(&models.LoginResponse{}, nil).Once()
	f.api.EXPECT().ListMessages(mock.Anything, true).Return(nil, errors.New("timeout")).Times(4)
	f.api.EXPECT().ListMessages(mock.Anything, true).Return(nil, nil).Once()
	f.api.EXPECT().ListMessages(mock.Anything, true).Return(nil, errors.New("timeout")).Once()

	for i := 0; i < 6; i++ {
		f.w.Poll(context.Background())
	}
	require.Len(t, f.w.sessions, 1)
	assert.Equal(t, 1, f.w.sessions["home"].errors)
}

func TestPoll_RemovedProfileDropsSession(t *testing.T) {
	store := mocks.NewMockProfileStore(t)
	api := mocks.NewMockServerAPI(t)
	w := New(config.WatcherConfig{Interval: time.Second, MaxErrors: 5, Blacklist: time.Minute}, store,
		func(p *models.Profile) (interfaces.ServerAPI, error) { return api, nil }, nil)

	store.EXPECT().ListProfiles(mock.Anything).Return([]models.Profile{*testutil.CreateTestProfile()}, nil).Once()
	api.EXPECT().Login(mock.Anything, "bob", "secret").Return(&models.LoginResponse{}, nil).Once()
	api.EXPECT().ListMessages(mock.Anything, true).Return([]models.Message{{ID: "m1"}}, nil).Once()
	w.Poll(context.Background())
	require.Len(t, w.sessions, 1)

	store.EXPECT().ListProfiles(mock.Anything).Return(nil, nil).Once()
	w.Poll(context.Background())
	assert.Empty(t, w.sessions)
}

func TestRun_StopsOnCancel(t *testing.T) {
	f := setupWatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		f.w.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
