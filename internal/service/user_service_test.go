package service

import (
	"context"
	"testing"

	"recruitbot/internal/config"
	"recruitbot/internal/models"
	"recruitbot/internal/onboarding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Roles(t *testing.T) {
	cfg := &config.Config{Operators: []int64{1, 2}, Blacklist: []int64{3}}
	s := NewUserService(nil, cfg, nil)

	assert.True(t, s.IsOperator(1))
	assert.False(t, s.IsOperator(3))
	assert.True(t, s.IsBlacklisted(3))
	assert.False(t, s.IsBlacklisted(1))

	ops := s.Operators()
	assert.Equal(t, []int64{1, 2}, ops)
	ops[0] = 99
	assert.True(t, s.IsOperator(1), "Operators returns a copy")
	assert.Equal(t, []int64{1, 2}, s.Operators())
}

func TestUserService_EnsureUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, created, err := f.users.EnsureUser(ctx, 10, "@olga", "Ольга")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.StatusChatting, user.Status)
	assert.Equal(t, "olga", user.Username)

	again, created, err := f.users.EnsureUser(ctx, 10, "olga", "Ольга")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)

	// профиль обновляется, статус остается
	require.NoError(t, f.db.UpdateUserStatus(ctx, 10, models.StatusRegistered))
	renamed, _, err := f.users.EnsureUser(ctx, 10, "olga_new", "")
	require.NoError(t, err)
	assert.Equal(t, "olga_new", renamed.Username)
	assert.Equal(t, "Ольга", renamed.FirstName)
	assert.Equal(t, models.StatusRegistered, f.reload(t, 10).Status)

	_, _, err = f.users.EnsureUser(ctx, 0, "x", "y")
	assert.ErrorIs(t, err, models.ErrInvalidUserID)
}

func TestUserService_Language(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, 11, models.StatusChatting)

	f.users.RememberLanguage(ctx, user, models.LangUK)
	assert.Equal(t, models.LangUK, f.reload(t, 11).Language)
	assert.False(t, f.reload(t, 11).LanguageLocked)

	require.NoError(t, f.users.SwitchLanguage(ctx, 11, models.LangEN))
	locked := f.reload(t, 11)
	assert.True(t, locked.LanguageLocked)

	// явный выбор не перетирается детекцией
	f.users.RememberLanguage(ctx, locked, models.LangRU)
	assert.Equal(t, models.LangEN, f.reload(t, 11).Language)

	f.users.RememberLanguage(ctx, user, models.Language("de"))
	assert.Equal(t, models.LangEN, f.reload(t, 11).Language)
}

func TestUserService_AdvanceAndGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, 12, models.StatusPendingReview)

	require.NoError(t, f.users.Advance(ctx, user, onboarding.EventApproved))
	assert.Equal(t, models.StatusHelpingRegistration, user.Status)
	assert.Equal(t, models.StatusHelpingRegistration, f.reload(t, 12).Status)

	err := f.users.Advance(ctx, user, onboarding.EventSubmitted)
	assert.ErrorIs(t, err, onboarding.ErrInvalidTransition)
	assert.Equal(t, models.StatusHelpingRegistration, user.Status)

	require.NoError(t, f.users.MarkInGroup(ctx, user))
	assert.True(t, f.reload(t, 12).InGroup)

	rejected := f.seedUser(t, 13, models.StatusRejected)
	assert.ErrorIs(t, f.users.Advance(ctx, rejected, onboarding.EventStarted), onboarding.ErrTerminal)
}

func TestUserService_Touch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedUser(t, 14, models.StatusChatting)

	require.NoError(t, f.users.Touch(ctx, 14))
	users, err := f.users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
