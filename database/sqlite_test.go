package database

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"parley/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { CloseDB() })
}

func githubUser(id, login string) models.OAuthUserInfo {
	return models.OAuthUserInfo{
		Provider:       "github",
		ProviderUserID: id,
		Username:       login,
		Email:          login + "@example.com",
	}
}

func TestUpsertOAuthUserFirstUserIsAdmin(t *testing.T) {
	setupDB(t)

	first, err := UpsertOAuthUser(githubUser("100", "alice"))
	require.NoError(t, err)
	assert.True(t, first.IsAdmin)

	second, err := UpsertOAuthUser(githubUser("200", "bob"))
	require.NoError(t, err)
	assert.False(t, second.IsAdmin)

	count, err := CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUpsertOAuthUserRefreshesProfile(t *testing.T) {
	setupDB(t)

	created, err := UpsertOAuthUser(githubUser("100", "alice"))
	require.NoError(t, err)

	updated, err := UpsertOAuthUser(models.OAuthUserInfo{
		Provider:       "github",
		ProviderUserID: "100",
		Username:       "alice-renamed",
		DisplayName:    "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "same provider identity must map to the same user")
	assert.Equal(t, "alice-renamed", updated.Username)
	assert.Equal(t, "Alice", updated.DisplayName.String)

	count, err := CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSessionsLifecycle(t *testing.T) {
	setupDB(t)
	user, err := UpsertOAuthUser(githubUser("100", "alice"))
	require.NoError(t, err)

	session, err := CreateSession(user.ID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	got, err := GetSessionByToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)

	require.NoError(t, DeleteSession(session.Token))
	_, err = GetSessionByToken(session.Token)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestExpiredSessionsAreInvisibleAndSwept(t *testing.T) {
	setupDB(t)
	user, err := UpsertOAuthUser(githubUser("100", "alice"))
	require.NoError(t, err)

	expired, err := CreateSession(user.ID, -time.Minute)
	require.NoError(t, err)
	live, err := CreateSession(user.ID, time.Hour)
	require.NoError(t, err)

	_, err = GetSessionByToken(expired.Token)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	n, err := DeleteExpiredSessions()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = GetSessionByToken(live.Token)
	assert.NoError(t, err)
}

func TestConversationCRUD(t *testing.T) {
	setupDB(t)
	user, err := UpsertOAuthUser(githubUser("100", "alice"))
	require.NoError(t, err)

	c, err := CreateConversation(user.ID, "First")
	require.NoError(t, err)

	got, err := GetConversationByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)

	renamed, err := UpdateConversationTitle(c.ID, "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", renamed.Title)

	list, err := ListConversationsForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, DeleteConversation(c.ID))
	_, err = GetConversationByID(c.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteConversationCascadesToMessages(t *testing.T) {
	setupDB(t)
	user, err := UpsertOAuthUser(githubUser("100", "alice"))
	require.NoError(t, err)
	c, err := CreateConversation(user.ID, "Thread")
	require.NoError(t, err)

	_, err = CreateMessage(c.ID, models.RoleUser, "hello")
	require.NoError(t, err)
	require.NoError(t, DeleteConversation(c.ID))

	var count int64
	require.NoError(t, DB.QueryRow(`SELECT COUNT(*) FROM messages WHERE conversation_id = ?`, c.ID).Scan(&count))
	assert.Zero(t, count)
}

func TestMessagesPaginationAndOrdering(t *testing.T) {
	setupDB(t)
	user, err := UpsertOAuthUser(githubUser("100", "alice"))
	require.NoError(t, err)
	c, err := CreateConversation(user.ID, "Thread")
	require.NoError(t, err)

	contents := []string{"one", "two", "three", "four", "five"}
	for _, content := range contents {
		_, err := CreateMessage(c.ID, models.RoleUser, content)
		require.NoError(t, err)
	}

	page1, total, err := GetMessagesPaginated(models.MessageFilters{ConversationID: c.ID, Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 2)
	assert.Equal(t, "one", page1[0].Content)
	assert.Equal(t, "two", page1[1].Content)

	page3, _, err := GetMessagesPaginated(models.MessageFilters{ConversationID: c.ID, Page: 3, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "five", page3[0].Content)
}

func TestGetRecentMessagesWindow(t *testing.T) {
	setupDB(t)
	user, err := UpsertOAuthUser(githubUser("100", "alice"))
	require.NoError(t, err)
	c, err := CreateConversation(user.ID, "Thread")
	require.NoError(t, err)

	for _, content := range []string{"one", "two", "three", "four"} {
		_, err := CreateMessage(c.ID, models.RoleUser, content)
		require.NoError(t, err)
	}

	recent, err := GetRecentMessages(c.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	// The newest two, still in chronological order.
	assert.Equal(t, "three", recent[0].Content)
	assert.Equal(t, "four", recent[1].Content)
}

func TestSettings(t *testing.T) {
	setupDB(t)

	value, err := GetSetting(SettingSetupComplete, "false")
	require.NoError(t, err)
	assert.Equal(t, "false", value)

	require.NoError(t, SetSetting(SettingSetupComplete, "true"))
	require.NoError(t, SetSetting(SettingInstanceName, "staging"))
	require.NoError(t, SetSetting(SettingInstanceName, "production")) // Overwrite.

	value, err = GetSetting(SettingSetupComplete, "false")
	require.NoError(t, err)
	assert.Equal(t, "true", value)

	name, err := GetSetting(SettingInstanceName, "")
	require.NoError(t, err)
	assert.Equal(t, "production", name)
}
