package businessflow

import (
	"context"
	"fmt"
	"sync"
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

func newAssignmentTestFlow(f *apptest.Fixtures, sms services.SMSService) AssignmentFlow {
	notification := NewNotificationFlow(
		f.Shifts, f.Employees, f.Templates, f.Messages, f.Audits,
		NewEligibilityFlow(f.Employees), sms,
		NotificationConfig{SourceNumber: "+15550009999", RetryCount: 1, RetryBackoff: time.Millisecond},
	)
	return NewAssignmentFlow(f.Shifts, f.Employees, f.Audits, notification)
}

func TestAssignClaimsShift(t *testing.T) {
	f := apptest.NewFixtures()
	flow := newAssignmentTestFlow(f, services.NewMockSMSService())

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	employee := f.CreateEmployee("+15550000001", nurse.ID, *icu)
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	result, err := flow.Assign(context.Background(), shift.ID, &dto.AssignShiftRequest{EmployeeID: employee.ID}, Actor{ID: 1, Name: "Sup"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "claimed", result.Status)
	require.NotNil(t, result.AssignedEmployee)
	assert.Equal(t, employee.FullName(), *result.AssignedEmployee)

	stored, err := f.Shifts.ByID(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftStatusClaimed, stored.Status)
	require.NotNil(t, stored.AssignedEmployeeID)
	assert.Equal(t, employee.ID, *stored.AssignedEmployeeID)

	audits, err := f.Audits.ListByAction(context.Background(), models.AuditActionShiftAssigned, 0, 0)
	require.NoError(t, err)
	assert.Len(t, audits, 1)
}

func TestAssignDoesNotRequireInterest(t *testing.T) {
	f := apptest.NewFixtures()
	flow := newAssignmentTestFlow(f, services.NewMockSMSService())

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	ward := f.CreateArea("Ward")
	// Not even in the shift's area: the supervisor's pick is final.
	employee := f.CreateEmployee("+15550000001", nurse.ID, *ward)
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	_, err := flow.Assign(context.Background(), shift.ID, &dto.AssignShiftRequest{EmployeeID: employee.ID}, Actor{ID: 1, Name: "Sup"}, nil)
	assert.NoError(t, err)
}

func TestAssignConcurrentOneWinner(t *testing.T) {
	f := apptest.NewFixtures()
	flow := newAssignmentTestFlow(f, services.NewMockSMSService())

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	const contenders = 8
	employees := make([]*models.Employee, contenders)
	for i := range employees {
		employees[i] = f.CreateEmployee(fmt.Sprintf("+1555000100%d", i), nurse.ID, *icu)
	}

	errs := make([]error, contenders)
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = flow.Assign(context.Background(), shift.ID, &dto.AssignShiftRequest{EmployeeID: employees[i].ID}, Actor{ID: 1, Name: "Sup"}, nil)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.True(t, IsShiftConflict(err) || IsShiftNotAvailable(err))
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent assignment wins")

	// The shift keeps its first assignee.
	stored, err := f.Shifts.ByID(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftStatusClaimed, stored.Status)
	assert.NotNil(t, stored.AssignedEmployeeID)
}

func TestAssignUnknownShift(t *testing.T) {
	f := apptest.NewFixtures()
	flow := newAssignmentTestFlow(f, services.NewMockSMSService())

	_, err := flow.Assign(context.Background(), 42, &dto.AssignShiftRequest{EmployeeID: 1}, Actor{ID: 1, Name: "Sup"}, nil)
	assert.True(t, IsShiftNotFound(err))
}

func TestAssignClaimedShift(t *testing.T) {
	f := apptest.NewFixtures()
	flow := newAssignmentTestFlow(f, services.NewMockSMSService())

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	first := f.CreateEmployee("+15550000001", nurse.ID, *icu)
	second := f.CreateEmployee("+15550000002", nurse.ID, *icu)
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	_, err := flow.Assign(context.Background(), shift.ID, &dto.AssignShiftRequest{EmployeeID: first.ID}, Actor{ID: 1, Name: "Sup"}, nil)
	require.NoError(t, err)

	_, err = flow.Assign(context.Background(), shift.ID, &dto.AssignShiftRequest{EmployeeID: second.ID}, Actor{ID: 1, Name: "Sup"}, nil)
	assert.True(t, IsShiftNotAvailable(err))
}

func TestAssignUnknownEmployee(t *testing.T) {
	f := apptest.NewFixtures()
	flow := newAssignmentTestFlow(f, services.NewMockSMSService())

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	_, err := flow.Assign(context.Background(), shift.ID, &dto.AssignShiftRequest{EmployeeID: 42}, Actor{ID: 1, Name: "Sup"}, nil)
	assert.True(t, IsInvalidEmployee(err))

	// The shift stays available for a valid retry.
	stored, err := f.Shifts.ByID(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftStatusAvailable, stored.Status)
}

func TestAssignInactiveEmployee(t *testing.T) {
	f := apptest.NewFixtures()
	flow := newAssignmentTestFlow(f, services.NewMockSMSService())

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	employee := f.CreateEmployee("+15550000001", nurse.ID, *icu)
	employee.IsActive = utils.ToPtr(false)
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	_, err := flow.Assign(context.Background(), shift.ID, &dto.AssignShiftRequest{EmployeeID: employee.ID}, Actor{ID: 1, Name: "Sup"}, nil)
	assert.True(t, IsEmployeeInactive(err))
}

func TestAssignWithConfirmationText(t *testing.T) {
	f := apptest.NewFixtures()
	sms := services.NewMockSMSService()
	flow := newAssignmentTestFlow(f, sms)

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	employee := f.CreateEmployee("+15550000001", nurse.ID, *icu)
	f.CreateEmployee("+15550000002", nurse.ID, *icu) // must not be texted
	f.CreateDefaultTemplate(models.MessageTypeShiftConfirmation, "Confirmed for {date}, {start_time}-{end_time}.")
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	_, err := flow.Assign(context.Background(), shift.ID, &dto.AssignShiftRequest{EmployeeID: employee.ID, Notify: true}, Actor{ID: 1, Name: "Sup"}, nil)
	require.NoError(t, err)

	// Only the assignee hears about it.
	sent := sms.GetSentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, employee.NormalizedPhone, sent[0].Recipient)
	assert.Contains(t, sent[0].Body, "Confirmed for")
}

func TestAssignConfirmationFailureDoesNotUndoAssignment(t *testing.T) {
	f := apptest.NewFixtures()
	sms := services.NewMockSMSService()
	flow := newAssignmentTestFlow(f, sms)

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	employee := f.CreateEmployee("+15550000001", nurse.ID, *icu)
	// No confirmation template exists, so the notify step fails.
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	result, err := flow.Assign(context.Background(), shift.ID, &dto.AssignShiftRequest{EmployeeID: employee.ID, Notify: true}, Actor{ID: 1, Name: "Sup"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "claimed", result.Status)

	stored, err := f.Shifts.ByID(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftStatusClaimed, stored.Status)
}
