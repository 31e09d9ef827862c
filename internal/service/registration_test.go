package service

import (
	"context"
	"errors"
	"testing"

	"recruitbot/internal/events"
	"recruitbot/internal/knowledge"
	"recruitbot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOCR struct {
	id  string
	ok  bool
	err error
}

func (o *fakeOCR) ExtractID(_ context.Context, image []byte) (string, bool, error) {
	if len(image) == 0 {
		return "", false, errors.New("empty image")
	}
	return o.id, o.ok, o.err
}

type fakeFiles struct {
	err error
}

func (f *fakeFiles) DownloadFile(_ context.Context, fileID string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("image:" + fileID), nil
}

func newRegistrationService(f *fixture, ocr *fakeOCR, files *fakeFiles) *RegistrationService {
	return NewRegistrationService(f.db, f.db, ocr, files, f.notifier, f.bus, nil)
}

func TestRegistration_ScreenshotRecognized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, 70, models.StatusHelpingRegistration)
	s := newRegistrationService(f, &fakeOCR{id: "12345678", ok: true}, &fakeFiles{})

	require.True(t, s.AcceptsScreenshot(user))
	v, err := s.HandleScreenshot(ctx, user, "shot-1", "")
	require.NoError(t, err)
	assert.True(t, v.Verified)
	assert.Equal(t, "12345678", v.PlatformID)
	assert.Equal(t, IDSourceOCR, v.Source)
	assert.Equal(t, knowledge.ScreenshotAccepted.In(models.LangRU), v.Outcome.Text())

	stored := f.reload(t, 70)
	assert.Equal(t, models.StatusRegistered, stored.Status)
	assert.Equal(t, "12345678", stored.PlatformID)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "screenshot", f.notifier.sent[0].kind)
	assert.Equal(t, []string{"shot-1"}, f.notifier.sent[0].photoIDs)
	assert.Contains(t, f.published(), events.EventUserRegistered)
}

func TestRegistration_CaptionFallback(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, 71, models.StatusHelpingRegistration)
	s := newRegistrationService(f, &fakeOCR{err: errors.New("ocr down")}, &fakeFiles{})

	v, err := s.HandleScreenshot(context.Background(), user, "shot-2", " 987654321 ")
	require.NoError(t, err)
	assert.True(t, v.Verified)
	assert.Equal(t, IDSourceCaption, v.Source)
	assert.Equal(t, "987654321", f.reload(t, 71).PlatformID)
}

func TestRegistration_NotRecognized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, 72, models.StatusHelpingRegistration)
	s := newRegistrationService(f, &fakeOCR{ok: false}, &fakeFiles{})

	v, err := s.HandleScreenshot(ctx, user, "shot-3", "вот мой профиль")
	require.NoError(t, err)
	assert.False(t, v.Verified)
	assert.Equal(t, knowledge.ScreenshotNoID.In(models.LangRU), v.Outcome.Text())

	stored := f.reload(t, 72)
	assert.Equal(t, models.StatusWaitingScreenshot, stored.Status)
	assert.Empty(t, stored.PlatformID)
	// оператор все равно видит скриншот
	assert.Equal(t, []string{"screenshot"}, f.notifier.kinds())

	// затем пользователь вводит ID текстом
	v, handled, err := s.HandleTypedID(ctx, stored, "123456")
	require.NoError(t, err)
	require.True(t, handled)
	assert.True(t, v.Verified)
	assert.Equal(t, IDSourceTyped, v.Source)
	assert.Equal(t, models.StatusRegistered, f.reload(t, 72).Status)
}

func TestRegistration_DownloadFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, 73, models.StatusRegistered)
	s := newRegistrationService(f, &fakeOCR{id: "111111", ok: true}, &fakeFiles{err: errors.New("timeout")})

	v, err := s.HandleScreenshot(context.Background(), user, "shot-4", "")
	require.NoError(t, err)
	assert.False(t, v.Verified)
	assert.Equal(t, models.StatusWaitingScreenshot, f.reload(t, 73).Status)
}

func TestRegistration_TypedID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := newRegistrationService(f, &fakeOCR{}, &fakeFiles{})

	waiting := f.seedUser(t, 74, models.StatusWaitingScreenshot)

	// цифры неверной длины: просим прислать ID еще раз
	v, handled, err := s.HandleTypedID(ctx, waiting, "12 34")
	require.NoError(t, err)
	require.True(t, handled)
	assert.Equal(t, knowledge.ScreenshotPrompt.In(models.LangRU), v.Outcome.Text())
	assert.Equal(t, models.StatusWaitingScreenshot, f.reload(t, 74).Status)

	// любой другой текст тоже возвращает к скриншоту, без смены статуса
	v, handled, err = s.HandleTypedID(ctx, waiting, "я не знаю где его взять")
	require.NoError(t, err)
	require.True(t, handled)
	assert.Equal(t, knowledge.ScreenshotPrompt.In(models.LangRU), v.Outcome.Text())
	assert.Equal(t, models.StatusWaitingScreenshot, f.reload(t, 74).Status)

	// в helping_registration короткие цифры не перехватываются
	helping := f.seedUser(t, 75, models.StatusHelpingRegistration)
	_, handled, err = s.HandleTypedID(ctx, helping, "4")
	require.NoError(t, err)
	assert.False(t, handled)

	chatting := f.seedUser(t, 76, models.StatusChatting)
	_, handled, err = s.HandleTypedID(ctx, chatting, "12345678")
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestRegistration_IgnoresUsersBeforeApproval(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, 77, models.StatusPendingReview)
	s := newRegistrationService(f, &fakeOCR{id: "12345678", ok: true}, &fakeFiles{})

	assert.False(t, s.AcceptsScreenshot(user))
	v, err := s.HandleScreenshot(context.Background(), user, "shot-5", "")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoop, v.Outcome.Kind)
	assert.Equal(t, models.StatusPendingReview, f.reload(t, 77).Status)
}
