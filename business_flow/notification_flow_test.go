package businessflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shiftwave/shiftwave/app/dto"
	"github.com/shiftwave/shiftwave/app/services"
	"github.com/shiftwave/shiftwave/models"
	apptest "github.com/shiftwave/shiftwave/testing"
	"github.com/shiftwave/shiftwave/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationTestFlow(f *apptest.Fixtures, sms services.SMSService) NotificationFlow {
	return NewNotificationFlow(
		f.Shifts, f.Employees, f.Templates, f.Messages, f.Audits,
		NewEligibilityFlow(f.Employees), sms,
		NotificationConfig{
			PublicBaseURL: "https://shifts.example.com",
			SourceNumber:  "+15550009999",
			RetryCount:    1,
			RetryBackoff:  time.Millisecond,
		},
	)
}

func notificationTestSetup(f *apptest.Fixtures) *models.Shift {
	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	f.CreateEmployee("+15550000001", nurse.ID, *icu)
	f.CreateEmployee("+15550000002", nurse.ID, *icu)
	f.CreateDefaultTemplate(models.MessageTypeShiftNotification, "Open: {position} on {date}. {link}")
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")
	shift.Position = nurse
	shift.Area = icu
	return shift
}

func TestNotifyDispatchesToEligibleEmployees(t *testing.T) {
	f := apptest.NewFixtures()
	sms := services.NewMockSMSService()
	flow := newNotificationTestFlow(f, sms)
	shift := notificationTestSetup(f)

	resp, err := flow.Notify(context.Background(), shift.ID, nil, models.MessageTypeShiftNotification, Actor{ID: 1, Name: "Sup"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.RecipientCount)
	assert.Equal(t, 2, resp.SentCount)
	assert.Equal(t, 0, resp.FailedCount)

	sent := sms.GetSentMessages()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[0].Body, "Open: Nurse")
	assert.Contains(t, sent[0].Body, "https://shifts.example.com/s/ABC234")

	// Each recipient gets an individually trackable message row, marked sent
	// with the provider id recorded.
	messages, err := f.Messages.ListByShift(context.Background(), shift.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	for _, m := range messages {
		assert.Equal(t, models.MessageStatusSent, m.Status)
		require.NotNil(t, m.ProviderMessageID)
		assert.Equal(t, "mock", *m.ProviderName)
		assert.Equal(t, models.MessageTypeShiftNotification, m.MessageType)
	}

	// Notification metadata reflects attempted recipients.
	stored, err := f.Shifts.ByID(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.NotificationCount)
	assert.NotNil(t, stored.LastNotifiedAt)
}

func TestNotifyRenderFailureAbortsBeforeAnySend(t *testing.T) {
	f := apptest.NewFixtures()
	sms := services.NewMockSMSService()
	flow := newNotificationTestFlow(f, sms)
	shift := notificationTestSetup(f)

	// Template referencing an unknown placeholder fails the render.
	broken := f.CreateDefaultTemplate(models.MessageTypeShiftReminder, "Oops {unknown_thing}")
	_ = broken

	_, err := flow.Notify(context.Background(), shift.ID, nil, models.MessageTypeShiftReminder, Actor{ID: 1, Name: "Sup"}, nil)
	require.Error(t, err)
	assert.True(t, IsTemplateRender(err))

	// Nothing was sent and no message rows were created.
	assert.Empty(t, sms.GetSentMessages())
	messages, err := f.Messages.ListByShift(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)

	// Metadata untouched.
	stored, err := f.Shifts.ByID(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.NotificationCount)
	assert.Nil(t, stored.LastNotifiedAt)
}

func TestNotifyMissingTemplate(t *testing.T) {
	f := apptest.NewFixtures()
	sms := services.NewMockSMSService()
	flow := newNotificationTestFlow(f, sms)
	shift := notificationTestSetup(f)

	_, err := flow.Notify(context.Background(), shift.ID, nil, models.MessageTypeShiftRejection, Actor{ID: 1, Name: "Sup"}, nil)
	assert.True(t, IsTemplateRender(err) || IsTemplateNotFound(err))
	assert.Empty(t, sms.GetSentMessages())
}

func TestNotifyPartialFailureContinues(t *testing.T) {
	f := apptest.NewFixtures()
	sms := services.NewMockSMSService()
	flow := newNotificationTestFlow(f, sms)
	shift := notificationTestSetup(f)

	// One recipient's sends are forced to fail; the other still goes out.
	sms.FailFor["+15550000001"] = errors.New("provider rejected")

	resp, err := flow.Notify(context.Background(), shift.ID, nil, models.MessageTypeShiftNotification, Actor{ID: 1, Name: "Sup"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.RecipientCount)
	assert.Equal(t, 1, resp.SentCount)
	assert.Equal(t, 1, resp.FailedCount)

	require.Len(t, sms.GetSentMessages(), 1)

	messages, err := f.Messages.ListByShift(context.Background(), shift.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	byStatus := map[models.MessageStatus]int{}
	for _, m := range messages {
		byStatus[m.Status]++
		if m.Status == models.MessageStatusFailed {
			require.NotNil(t, m.ErrorCode)
			assert.Equal(t, "SEND_FAILED", *m.ErrorCode)
		}
	}
	assert.Equal(t, 1, byStatus[models.MessageStatusSent])
	assert.Equal(t, 1, byStatus[models.MessageStatusFailed])

	// Metadata is written after all attempts, counting attempted recipients.
	stored, err := f.Shifts.ByID(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.NotificationCount)
	assert.NotNil(t, stored.LastNotifiedAt)
}

func TestNotifyConfirmationDoesNotTouchBroadcastMetadata(t *testing.T) {
	f := apptest.NewFixtures()
	sms := services.NewMockSMSService()
	flow := newNotificationTestFlow(f, sms)
	shift := notificationTestSetup(f)
	f.CreateDefaultTemplate(models.MessageTypeShiftConfirmation, "Confirmed: {position} on {date}.")

	employees, err := f.Employees.ListNotifiable(context.Background(), shift.PositionID, &shift.AreaID)
	require.NoError(t, err)
	require.NotEmpty(t, employees)

	req := &dto.NotifyShiftRequest{TargetEmployeeIDs: []uint{employees[0].ID}}
	resp, err := flow.Notify(context.Background(), shift.ID, req, models.MessageTypeShiftConfirmation, Actor{ID: 1, Name: "Sup"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.RecipientCount)
	assert.Equal(t, 1, resp.SentCount)

	// A confirmation targets one person and must not clobber the broadcast
	// count on the shift.
	stored, err := f.Shifts.ByID(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.NotificationCount)
	assert.Nil(t, stored.LastNotifiedAt)
}

func TestNotifyExplicitTargetOverridesEligibility(t *testing.T) {
	f := apptest.NewFixtures()
	sms := services.NewMockSMSService()
	flow := newNotificationTestFlow(f, sms)
	shift := notificationTestSetup(f)

	employees, err := f.Employees.ListNotifiable(context.Background(), shift.PositionID, &shift.AreaID)
	require.NoError(t, err)
	require.Len(t, employees, 2)

	req := &dto.NotifyShiftRequest{TargetEmployeeIDs: []uint{employees[1].ID}}
	resp, err := flow.Notify(context.Background(), shift.ID, req, models.MessageTypeShiftNotification, Actor{ID: 1, Name: "Sup"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.RecipientCount)

	sent := sms.GetSentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, employees[1].NormalizedPhone, sent[0].Recipient)
}

func TestNotifyUnknownTargetEmployee(t *testing.T) {
	f := apptest.NewFixtures()
	sms := services.NewMockSMSService()
	flow := newNotificationTestFlow(f, sms)
	shift := notificationTestSetup(f)

	req := &dto.NotifyShiftRequest{TargetEmployeeIDs: []uint{9999}}
	_, err := flow.Notify(context.Background(), shift.ID, req, models.MessageTypeShiftNotification, Actor{ID: 1, Name: "Sup"}, nil)
	assert.True(t, IsInvalidEmployee(err))
	assert.Empty(t, sms.GetSentMessages())
}

func TestNotifyNoEligibleRecipients(t *testing.T) {
	f := apptest.NewFixtures()
	sms := services.NewMockSMSService()
	flow := newNotificationTestFlow(f, sms)

	// A shift with a template but no employee matching its position/area.
	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	f.CreateDefaultTemplate(models.MessageTypeShiftNotification, "Open: {position} on {date}. {link}")
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")
	shift.Position = nurse
	shift.Area = icu

	_, err := flow.Notify(context.Background(), shift.ID, nil, models.MessageTypeShiftNotification, Actor{ID: 1, Name: "Sup"}, nil)
	require.Error(t, err)
	assert.True(t, IsNoRecipients(err))
	assert.Empty(t, sms.GetSentMessages())

	// An empty broadcast must not stamp notification metadata.
	stored, err := f.Shifts.ByID(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.NotificationCount)
	assert.Nil(t, stored.LastNotifiedAt)

	// The empty dispatch is audited as a failure.
	audits, err := f.Audits.ListByAction(context.Background(), models.AuditActionShiftNotified, 0, 0)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.True(t, audits[0].IsFailed())
}

func TestNotifyWithoutConfiguredProvider(t *testing.T) {
	f := apptest.NewFixtures()
	sms := services.NewMockSMSService()
	flow := NewNotificationFlow(
		f.Shifts, f.Employees, f.Templates, f.Messages, f.Audits,
		NewEligibilityFlow(f.Employees), sms,
		NotificationConfig{PublicBaseURL: "https://shifts.example.com"},
	)
	shift := notificationTestSetup(f)

	_, err := flow.Notify(context.Background(), shift.ID, nil, models.MessageTypeShiftNotification, Actor{ID: 1, Name: "Sup"}, nil)
	require.Error(t, err)
	assert.True(t, IsProviderNotConfig(err))
	assert.Empty(t, sms.GetSentMessages())
}

func TestNotifyUnknownShift(t *testing.T) {
	f := apptest.NewFixtures()
	flow := newNotificationTestFlow(f, services.NewMockSMSService())

	_, err := flow.Notify(context.Background(), 42, nil, models.MessageTypeShiftNotification, Actor{ID: 1, Name: "Sup"}, nil)
	assert.True(t, IsShiftNotFound(err))
}

func TestNotifyNamedTemplate(t *testing.T) {
	f := apptest.NewFixtures()
	sms := services.NewMockSMSService()
	flow := newNotificationTestFlow(f, sms)
	shift := notificationTestSetup(f)

	custom := &models.MessageTemplate{
		Name:        "weekend_push",
		MessageType: models.MessageTypeShiftNotification,
		Content:     "Weekend coverage needed: {position}. {link}",
		IsDefault:   utils.ToPtr(false),
		IsActive:    utils.ToPtr(true),
	}
	require.NoError(t, f.Templates.Save(context.Background(), custom))

	req := &dto.NotifyShiftRequest{TemplateName: utils.ToPtr("weekend_push")}
	_, err := flow.Notify(context.Background(), shift.ID, req, models.MessageTypeShiftNotification, Actor{ID: 1, Name: "Sup"}, nil)
	require.NoError(t, err)

	sent := sms.GetSentMessages()
	require.NotEmpty(t, sent)
	assert.Contains(t, sent[0].Body, "Weekend coverage needed: Nurse.")
}
