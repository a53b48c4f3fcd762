package services

import (
	"testing"

	"resolvenow_backend/internal/models"
	"resolvenow_backend/internal/services/dto"
	"resolvenow_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messageFixture struct {
	*complaintFixture
	messages *fakeMessageRepo
	svc      MessageService

	complaint *dto.ComplaintResponse
}

func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()

	cf := newComplaintFixture(t)
	messages := newFakeMessageRepo()
	notifSvc := NewNotificationService(cf.notifications, cf.users, cf.pusher)

	f := &messageFixture{
		complaintFixture: cf,
		messages:         messages,
		svc:              NewMessageService(messages, cf.complaints, cf.users, notifSvc),
	}
	f.complaint = f.create(t)
	return f
}

func (f *messageFixture) assign(t *testing.T) {
	t.Helper()
	_, err := f.complaintFixture.svc.Assign(f.admin.ID, models.UserRoleAdmin, f.complaint.ID, &dto.AssignComplaintRequest{AgentID: f.agent.ID})
	require.NoError(t, err)
}

func TestSendMessageOwnerToAgent(t *testing.T) {
	f := newMessageFixture(t)
	f.assign(t)

	resp, recipientID, err := f.svc.SendMessage(f.owner.ID, models.UserRoleUser, f.complaint.ID, "When will someone look at this?")
	require.NoError(t, err)

	assert.Equal(t, f.agent.ID, recipientID)
	assert.Equal(t, f.owner.ID, resp.SenderID)
	assert.Equal(t, "Olivia Owner", resp.SenderName)

	agentNotifs := f.notifications.byUser(f.agent.ID)
	require.Len(t, agentNotifs, 1)
	assert.Equal(t, models.NotificationTypeNewMessage, agentNotifs[0].Type)
	assert.True(t, f.pusher.pushed(f.agent.ID, "new_notification"))
}

func TestSendMessageAgentToOwner(t *testing.T) {
	f := newMessageFixture(t)
	f.assign(t)

	_, recipientID, err := f.svc.SendMessage(f.agent.ID, models.UserRoleAgent, f.complaint.ID, "We are on it.")
	require.NoError(t, err)
	assert.Equal(t, f.owner.ID, recipientID)

	var messageNotifs int
	for _, n := range f.notifications.byUser(f.owner.ID) {
		if n.Type == models.NotificationTypeNewMessage {
			messageNotifs++
		}
	}
	assert.Equal(t, 1, messageNotifs)
}

func TestSendMessageUnassignedHasNoRecipient(t *testing.T) {
	f := newMessageFixture(t)

	_, recipientID, err := f.svc.SendMessage(f.owner.ID, models.UserRoleUser, f.complaint.ID, "Hello?")
	require.NoError(t, err)
	assert.Empty(t, recipientID)

	for _, n := range f.notifications.byUser(f.owner.ID) {
		assert.NotEqual(t, models.NotificationTypeNewMessage, n.Type)
	}
}

func TestSendMessageAccessDenied(t *testing.T) {
	f := newMessageFixture(t)

	stranger := f.users.add(&models.User{FullName: "Sam Stranger", Email: "stranger2@example.com", Role: models.UserRoleUser})

	_, _, err := f.svc.SendMessage(stranger.ID, models.UserRoleUser, f.complaint.ID, "Let me in")
	require.ErrorIs(t, err, apperrors.ErrComplaintAccessDenied)
}

func TestSendMessageRequiresText(t *testing.T) {
	f := newMessageFixture(t)

	_, _, err := f.svc.SendMessage(f.owner.ID, models.UserRoleUser, f.complaint.ID, "   ")
	require.Error(t, err)
}

func TestGetMessagesThread(t *testing.T) {
	f := newMessageFixture(t)
	f.assign(t)

	_, _, err := f.svc.SendMessage(f.owner.ID, models.UserRoleUser, f.complaint.ID, "First")
	require.NoError(t, err)
	_, _, err = f.svc.SendMessage(f.agent.ID, models.UserRoleAgent, f.complaint.ID, "Second")
	require.NoError(t, err)

	thread, err := f.svc.GetMessages(f.admin.ID, models.UserRoleAdmin, f.complaint.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "First", thread[0].Text)
	assert.Equal(t, "Second", thread[1].Text)
}
