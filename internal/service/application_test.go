package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"recruitbot/internal/database"
	"recruitbot/internal/events"
	"recruitbot/internal/knowledge"
	"recruitbot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplication_PhotoFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, 60, models.StatusChatting)

	out, err := f.apps.AddPhotos(ctx, user, []string{"p1"})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf(knowledge.PhotosNeedMore.In(models.LangRU), 1), out.Text())
	assert.Equal(t, models.StatusWaitingPhotos, f.reload(t, 60).Status)

	out, err = f.apps.AddPhotos(ctx, user, []string{"p2"})
	require.NoError(t, err)
	assert.Equal(t, knowledge.QuestionWorkHours.In(models.LangRU), out.Text())
	assert.Equal(t, models.StatusAskingWorkHours, f.reload(t, 60).Status)
	assert.Equal(t, 2, f.reload(t, 60).PhotosCount)

	// после перехода к вопросам фото уже не принимаются
	assert.False(t, f.apps.AcceptsPhotos(user))
	out, err = f.apps.AddPhotos(ctx, user, []string{"p3"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoop, out.Kind)
}

func TestApplication_AlbumCompletesAtOnce(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, 61, models.StatusChatting)

	out, err := f.apps.AddPhotos(context.Background(), user, []string{"a1", "a2"})
	require.NoError(t, err)
	assert.Equal(t, knowledge.QuestionWorkHours.In(models.LangRU), out.Text())
	assert.Equal(t, models.StatusAskingWorkHours, user.Status)
}

func TestApplication_TooManyPhotos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, 62, models.StatusWaitingPhotos)

	out, err := f.apps.AddPhotos(ctx, user, []string{"a1", "a2", "a3", "a4"})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf(knowledge.AlbumTooLarge.In(models.LangRU), models.PhotosMax, models.PhotosMax), out.Text())

	stored := f.reload(t, 62)
	assert.Zero(t, stored.PhotosCount)
	assert.Equal(t, models.StatusWaitingPhotos, stored.Status)

	photos, err := f.db.GetPhotos(ctx, 62)
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestApplication_SubmitAndApprove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, 63, models.StatusChatting)

	_, err := f.apps.AddPhotos(ctx, user, []string{"p1", "p2"})
	require.NoError(t, err)
	require.True(t, f.apps.InScreening(user))

	out, err := f.apps.AnswerScreening(ctx, user, "4-5 часов")
	require.NoError(t, err)
	assert.Equal(t, knowledge.QuestionExperience.In(models.LangRU), out.Text())
	assert.Equal(t, models.StatusAskingExperience, user.Status)

	out, err = f.apps.AnswerScreening(ctx, user, "нет опыта")
	require.NoError(t, err)
	assert.Equal(t, knowledge.ApplicationSubmitted.In(models.LangRU), out.Text())
	assert.Equal(t, models.StatusPendingReview, f.reload(t, 63).Status)

	require.Len(t, f.notifier.sent, 1)
	card := f.notifier.sent[0]
	assert.Equal(t, "application", card.kind)
	assert.Equal(t, "4-5 часов|нет опыта", card.text)
	assert.Equal(t, []string{"p1", "p2"}, card.photoIDs)
	assert.Contains(t, f.published(), events.EventApplicationSubmitted)

	rows, err := f.db.ListApplicationRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	appID := rows[0].ApplicationID

	decision, err := f.apps.Decide(ctx, appID, testOperator, true)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApproved, decision.Application.Status)
	assert.Equal(t, models.StatusHelpingRegistration, decision.User.Status)
	require.Len(t, decision.Outcome.Replies, 2)
	assert.Equal(t, knowledge.RegistrationDownload.In(models.LangRU), decision.Outcome.Replies[0])
	assert.Contains(t, f.published(), events.EventApplicationApproved)

	// повторное решение не проходит
	_, err = f.apps.Decide(ctx, appID, testOperator+1, false)
	assert.ErrorIs(t, err, database.ErrAlreadyDecided)
	assert.Equal(t, models.StatusHelpingRegistration, f.reload(t, 63).Status)
}

func TestApplication_RejectUsesOperatorText(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, 64, models.StatusPendingReview)
	require.NoError(t, f.db.SetSetting(ctx, SettingRejection, "Спасибо, но мы не можем продолжить."))

	app, err := models.NewApplication(64, "вечером", "да")
	require.NoError(t, err)
	require.NoError(t, f.db.CreateApplication(ctx, app))

	decision, err := f.apps.Decide(ctx, app.ID, testOperator, false)
	require.NoError(t, err)
	assert.Equal(t, "Спасибо, но мы не можем продолжить.", decision.Outcome.Text())
	assert.Equal(t, models.StatusRejected, f.reload(t, 64).Status)
	assert.Contains(t, f.published(), events.EventApplicationRejected)

	_, err = f.apps.Decide(ctx, 404, testOperator, true)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestApplication_ConcurrentDecisions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, 65, models.StatusPendingReview)

	app, _ := models.NewApplication(65, "весь день", "нет")
	require.NoError(t, f.db.CreateApplication(ctx, app))

	const operators = 6
	var wg sync.WaitGroup
	errs := make(chan error, operators)
	for i := 0; i < operators; i++ {
		wg.Add(1)
		go func(op int64) {
			defer wg.Done()
			_, err := f.apps.Decide(ctx, app.ID, op, op%2 == 0)
			errs <- err
		}(int64(100 + i))
	}
	wg.Wait()
	close(errs)

	wins := 0
	for err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.True(t, errors.Is(err, database.ErrAlreadyDecided) || errors.Is(err, ErrNotPending), err)
	}
	assert.Equal(t, 1, wins)

	decided, err := f.db.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.NotEqual(t, models.ApplicationPending, decided.Status)
}

// failingDecisions loses the first decision write, as a full disk would.
type failingDecisions struct {
	*database.DB
	failures int
}

func (d *failingDecisions) DecideAndAdvance(ctx context.Context, id int64, status models.ApplicationStatus, decidedBy int64, userStatus models.Status) error {
	if d.failures > 0 {
		d.failures--
		return errors.New("disk I/O error")
	}
	return d.DB.DecideAndAdvance(ctx, id, status, decidedBy, userStatus)
}

func TestApplication_FailedDecisionCanBeRetried(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, 66, models.StatusPendingReview)

	app, err := models.NewApplication(66, "утром", "да")
	require.NoError(t, err)
	require.NoError(t, f.db.CreateApplication(ctx, app))

	store := &failingDecisions{DB: f.db, failures: 1}
	apps := NewApplicationService(f.db, store, f.db, f.db, f.state, f.notifier, f.bus, models.PhotosMin, models.PhotosMax, nil)

	_, err = apps.Decide(ctx, app.ID, testOperator, true)
	require.Error(t, err)

	stored, err := f.db.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, stored.Status)
	assert.Equal(t, models.StatusPendingReview, f.reload(t, 66).Status)
	assert.NotContains(t, f.published(), events.EventApplicationApproved)

	decision, err := apps.Decide(ctx, app.ID, testOperator, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusHelpingRegistration, decision.User.Status)
	assert.Equal(t, models.StatusHelpingRegistration, f.reload(t, 66).Status)
	assert.Equal(t, knowledge.RegistrationDownload.In(models.LangRU), decision.Outcome.Replies[0])
}

func TestApplication_WelcomeText(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Equal(t, knowledge.Welcome.In(models.LangEN), f.apps.WelcomeText(ctx, models.LangEN))

	require.NoError(t, f.db.SetSetting(ctx, SettingWelcome, "Добро пожаловать в команду!"))
	assert.Equal(t, "Добро пожаловать в команду!", f.apps.WelcomeText(ctx, models.LangRU))
}
