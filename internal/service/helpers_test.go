package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"recruitbot/internal/config"
	"recruitbot/internal/database"
	"recruitbot/internal/events"
	"recruitbot/internal/models"
	"recruitbot/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testOperator = int64(900)

type notification struct {
	kind     string
	userID   int64
	text     string
	photoIDs []string
}

// fakeNotifier records what operators would have seen.
type fakeNotifier struct {
	mu    sync.Mutex
	sent  []notification
	err   error
	calls int
}

func (f *fakeNotifier) record(n notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeNotifier) NotifyEscalation(_ context.Context, user *models.User, question string) error {
	return f.record(notification{kind: "escalation", userID: user.ID, text: question})
}

func (f *fakeNotifier) NotifyFollowUp(_ context.Context, user *models.User, question string) error {
	return f.record(notification{kind: "follow_up", userID: user.ID, text: question})
}

func (f *fakeNotifier) NotifyApplication(_ context.Context, user *models.User, app *models.Application, photoIDs []string) error {
	return f.record(notification{kind: "application", userID: user.ID, text: app.WorkHours + "|" + app.Experience, photoIDs: photoIDs})
}

func (f *fakeNotifier) NotifyScreenshot(_ context.Context, user *models.User, fileID, platformID string) error {
	return f.record(notification{kind: "screenshot", userID: user.ID, text: platformID, photoIDs: []string{fileID}})
}

func (f *fakeNotifier) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, n := range f.sent {
		out = append(out, n.kind)
	}
	return out
}

// fixture wires the services over a real sqlite database and in-memory state.
type fixture struct {
	db       *database.DB
	bus      *events.EventBus
	state    *StateService
	notifier *fakeNotifier
	users    *UserService
	handoff  *HandoffService
	apps     *ApplicationService

	mu     sync.Mutex
	events []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		db:       db,
		bus:      events.NewEventBus(),
		state:    NewStateService(repository.NewMemoryStateRepository(time.Hour), &logger),
		notifier: &fakeNotifier{},
	}
	f.bus.Subscribe(func(e *events.Event) error {
		f.mu.Lock()
		f.events = append(f.events, e.Type)
		f.mu.Unlock()
		return nil
	},
		events.EventApplicationSubmitted, events.EventApplicationApproved, events.EventApplicationRejected,
		events.EventQuestionEscalated, events.EventQuestionAnswered, events.EventUserRegistered,
	)

	f.users = NewUserService(db, &config.Config{Operators: []int64{testOperator}}, &logger)
	f.handoff = NewHandoffService(db, db, db, db, f.state, f.notifier, f.bus, &logger)
	f.apps = NewApplicationService(db, db, db, db, f.state, f.notifier, f.bus, models.PhotosMin, models.PhotosMax, &logger)
	return f
}

func (f *fixture) seedUser(t *testing.T, id int64, status models.Status) *models.User {
	t.Helper()
	u, err := models.NewUser(id, fmt.Sprintf("user%d", id), "Test")
	require.NoError(t, err)
	u.Status = status
	require.NoError(t, f.db.SaveUser(context.Background(), u))
	return u
}

func (f *fixture) reload(t *testing.T, id int64) *models.User {
	t.Helper()
	u, err := f.db.GetUser(context.Background(), id)
	require.NoError(t, err)
	return u
}

func (f *fixture) published() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}
