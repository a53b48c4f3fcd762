package services

import (
	"testing"

	"resolvenow_backend/internal/models"
	"resolvenow_backend/internal/repositories"
	"resolvenow_backend/internal/services/dto"
	"resolvenow_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notificationFixture struct {
	users         *fakeUserRepo
	notifications *fakeNotificationRepo
	pusher        *recordingPusher
	svc           NotificationService
}

func newNotificationFixture(t *testing.T) *notificationFixture {
	t.Helper()

	f := &notificationFixture{
		users:         newFakeUserRepo(),
		notifications: newFakeNotificationRepo(),
		pusher:        &recordingPusher{},
	}
	f.svc = NewNotificationService(f.notifications, f.users, f.pusher)
	return f
}

func TestNotifyPersistsAndPushes(t *testing.T) {
	f := newNotificationFixture(t)

	require.NoError(t, f.svc.Notify("user-1", models.NotificationTypeGeneral, "Hello", "World", nil))

	stored := f.notifications.byUser("user-1")
	require.Len(t, stored, 1)
	assert.Equal(t, "Hello", stored[0].Title)
	assert.False(t, stored[0].Read)
	assert.True(t, f.pusher.pushed("user-1", "new_notification"))
}

func TestMarkAsRead(t *testing.T) {
	f := newNotificationFixture(t)

	require.NoError(t, f.svc.Notify("user-1", models.NotificationTypeGeneral, "Hello", "", nil))
	id := f.notifications.byUser("user-1")[0].ID

	// Someone else's notification looks like a missing one.
	err := f.svc.MarkAsRead("user-2", id)
	require.ErrorIs(t, err, apperrors.ErrNotificationNotFound)

	require.NoError(t, f.svc.MarkAsRead("user-1", id))

	count, err := f.svc.UnreadCount("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Marking again stays idempotent.
	require.NoError(t, f.svc.MarkAsRead("user-1", id))
}

func TestMarkAllAsRead(t *testing.T) {
	f := newNotificationFixture(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.svc.Notify("user-1", models.NotificationTypeGeneral, "n", "", nil))
	}
	require.NoError(t, f.svc.Notify("user-2", models.NotificationTypeGeneral, "other", "", nil))

	require.NoError(t, f.svc.MarkAllAsRead("user-1"))

	count, err := f.svc.UnreadCount("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// The other user's feed is untouched.
	count, err = f.svc.UnreadCount("user-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestListUnreadOnly(t *testing.T) {
	f := newNotificationFixture(t)

	require.NoError(t, f.svc.Notify("user-1", models.NotificationTypeGeneral, "first", "", nil))
	require.NoError(t, f.svc.Notify("user-1", models.NotificationTypeGeneral, "second", "", nil))

	id := f.notifications.byUser("user-1")[0].ID
	require.NoError(t, f.svc.MarkAsRead("user-1", id))

	all, err := f.svc.List("user-1", repositories.NotificationCriteria{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	unread, err := f.svc.List("user-1", repositories.NotificationCriteria{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "second", unread[0].Title)
}

func TestSendGlobalNotification(t *testing.T) {
	f := newNotificationFixture(t)

	admin := f.users.add(&models.User{FullName: "Ada", Email: "admin@example.com", Role: models.UserRoleAdmin})
	u1 := f.users.add(&models.User{FullName: "One", Email: "one@example.com", Role: models.UserRoleUser})
	u2 := f.users.add(&models.User{FullName: "Two", Email: "two@example.com", Role: models.UserRoleAgent})

	recipients, err := f.svc.SendGlobalNotification(admin.ID, &dto.BroadcastRequest{Title: "Maintenance", Message: "Down at midnight"})
	require.NoError(t, err)
	assert.Equal(t, 2, recipients)

	assert.Len(t, f.notifications.byUser(u1.ID), 1)
	assert.Len(t, f.notifications.byUser(u2.ID), 1)
	assert.Empty(t, f.notifications.byUser(admin.ID), "sender is excluded")

	got := f.notifications.byUser(u1.ID)[0]
	assert.Equal(t, models.NotificationTypeBroadcast, got.Type)

	// Broadcasts are durable only, nothing is pushed live.
	assert.False(t, f.pusher.pushed(u1.ID, "new_notification"))
}
