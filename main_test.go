package main

import (
	"context"
	"testing"
	"time"

	businessflow "github.com/shiftwave/shiftwave/business_flow"
	"github.com/shiftwave/shiftwave/app/dto"
	"github.com/shiftwave/shiftwave/app/services"
	"github.com/shiftwave/shiftwave/models"
	apptest "github.com/shiftwave/shiftwave/testing"
	"github.com/shiftwave/shiftwave/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDefaultTemplatesCoverEveryDispatchType(t *testing.T) {
	f := apptest.NewFixtures()
	require.NoError(t, ensureDefaultTemplates(f.Templates))

	// Every message type the flows dispatch with needs a seeded default,
	// including the bulk re-broadcast type.
	for _, messageType := range []models.MessageType{
		models.MessageTypeShiftNotification,
		models.MessageTypeShiftReminder,
		models.MessageTypeShiftConfirmation,
		models.MessageTypeShiftRejection,
		models.MessageTypeBulk,
	} {
		template, err := f.Templates.DefaultForType(context.Background(), messageType)
		require.NoError(t, err)
		require.NotNil(t, template, "no default template for %s", messageType)
		assert.True(t, utils.IsTrue(template.IsActive))
	}
}

func TestEnsureDefaultTemplatesKeepsOperatorCopy(t *testing.T) {
	f := apptest.NewFixtures()

	tuned := &models.MessageTemplate{
		Name:        "default_bulk",
		MessageType: models.MessageTypeBulk,
		Content:     "Coverage still needed: {link}",
		IsDefault:   utils.ToPtr(true),
		IsActive:    utils.ToPtr(true),
	}
	require.NoError(t, f.Templates.Save(context.Background(), tuned))

	require.NoError(t, ensureDefaultTemplates(f.Templates))

	stored, err := f.Templates.ByName(context.Background(), "default_bulk")
	require.NoError(t, err)
	assert.Equal(t, "Coverage still needed: {link}", stored.Content)

	count, err := f.Templates.Count(context.Background(), models.MessageTemplateFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestEnsureDefaultRoles(t *testing.T) {
	f := apptest.NewFixtures()
	require.NoError(t, ensureDefaultRoles(f.Roles))

	admin, err := f.Roles.ByName(context.Background(), "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	for _, tag := range models.AllPermissions {
		assert.True(t, admin.HasPermission(tag), "admin missing %s", tag)
	}

	viewer, err := f.Roles.ByName(context.Background(), "viewer")
	require.NoError(t, err)
	require.NotNil(t, viewer)
	assert.False(t, viewer.HasPermission(models.PermissionBulkOperations))

	// Re-running never duplicates or overwrites.
	require.NoError(t, ensureDefaultRoles(f.Roles))
	count, err := f.Roles.Count(context.Background(), models.RoleFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestSeededTemplatesServeBulkNotify(t *testing.T) {
	f := apptest.NewFixtures()
	require.NoError(t, ensureDefaultTemplates(f.Templates))

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	f.CreateEmployee("+15550000001", nurse.ID, *icu)
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")
	shift.Position = nurse
	shift.Area = icu

	sms := services.NewMockSMSService()
	notification := businessflow.NewNotificationFlow(
		f.Shifts, f.Employees, f.Templates, f.Messages, f.Audits,
		businessflow.NewEligibilityFlow(f.Employees), sms,
		businessflow.NotificationConfig{
			PublicBaseURL: "https://shifts.example.com",
			SourceNumber:  "+15550009999",
			RetryCount:    1,
			RetryBackoff:  time.Millisecond,
		},
	)
	flow := businessflow.NewShiftFlow(
		f.Shifts, f.Positions, f.Areas, f.Messages, f.Audits, notification,
		businessflow.ShiftFlowConfig{Location: time.UTC},
	)

	// A bulk re-broadcast must work against nothing but the seeded defaults.
	results := flow.NotifyMany(context.Background(), &dto.BulkShiftRequest{ShiftIDs: []uint{shift.ID}}, businessflow.Actor{ID: 1, Name: "Sup"}, nil)
	require.Len(t, results, 1)
	require.True(t, results[0].Success, "bulk notify failed: %v", results[0].ErrorCode)
	require.Len(t, sms.GetSentMessages(), 1)
	assert.Contains(t, sms.GetSentMessages()[0].Body, "https://shifts.example.com/s/ABC234")
}
