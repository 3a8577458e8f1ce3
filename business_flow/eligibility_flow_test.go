package businessflow

import (
	"context"
	"testing"

	"github.com/shiftwave/shiftwave/models"
	apptest "github.com/shiftwave/shiftwave/testing"
	"github.com/shiftwave/shiftwave/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibleEmployeesFiltersByPositionAndArea(t *testing.T) {
	f := apptest.NewFixtures()
	flow := NewEligibilityFlow(f.Employees)

	nurse := f.CreatePosition("Nurse")
	janitor := f.CreatePosition("Janitor")
	icu := f.CreateArea("ICU")
	ward := f.CreateArea("Ward")

	inArea := f.CreateEmployee("+15550000001", nurse.ID, *icu)
	f.CreateEmployee("+15550000002", nurse.ID, *ward)   // wrong area
	f.CreateEmployee("+15550000003", janitor.ID, *icu)  // wrong position
	alsoInArea := f.CreateEmployee("+15550000004", nurse.ID, *icu, *ward)

	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	eligible, err := flow.EligibleEmployees(context.Background(), shift)
	require.NoError(t, err)
	require.Len(t, eligible, 2)
	assert.Equal(t, inArea.ID, eligible[0].ID)
	assert.Equal(t, alsoInArea.ID, eligible[1].ID)
}

func TestEligibleEmployeesNotifyAllAreasIgnoresMembership(t *testing.T) {
	f := apptest.NewFixtures()
	flow := NewEligibilityFlow(f.Employees)

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	ward := f.CreateArea("Ward")

	f.CreateEmployee("+15550000001", nurse.ID, *icu)
	f.CreateEmployee("+15550000002", nurse.ID, *ward)

	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")
	shift.NotifyAllAreas = true

	eligible, err := flow.EligibleEmployees(context.Background(), shift)
	require.NoError(t, err)
	assert.Len(t, eligible, 2)
}

func TestEligibleEmployeesExcludesInactiveAndOptedOut(t *testing.T) {
	f := apptest.NewFixtures()
	flow := NewEligibilityFlow(f.Employees)

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")

	active := f.CreateEmployee("+15550000001", nurse.ID, *icu)

	inactive := f.CreateEmployee("+15550000002", nurse.ID, *icu)
	inactive.IsActive = utils.ToPtr(false)

	optedOut := f.CreateEmployee("+15550000003", nurse.ID, *icu)
	optedOut.SMSOptIn = utils.ToPtr(false)

	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	eligible, err := flow.EligibleEmployees(context.Background(), shift)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, active.ID, eligible[0].ID)
}

func TestEligibleEmployeesExcludesUnnormalizablePhone(t *testing.T) {
	f := apptest.NewFixtures()
	flow := NewEligibilityFlow(f.Employees)

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")

	ok := f.CreateEmployee("+15550000001", nurse.ID, *icu)
	broken := f.CreateEmployee("+15550000002", nurse.ID, *icu)
	broken.Phone = "not-a-number"

	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	eligible, err := flow.EligibleEmployees(context.Background(), shift)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, ok.ID, eligible[0].ID)
}

func TestIsEligible(t *testing.T) {
	f := apptest.NewFixtures()
	flow := NewEligibilityFlow(f.Employees)

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	ward := f.CreateArea("Ward")
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	employee := f.CreateEmployee("+15550000001", nurse.ID, *icu)
	assert.True(t, flow.IsEligible(context.Background(), shift, employee))

	// Eligibility is re-evaluated against current state, not state at shift
	// creation: deactivating the employee revokes it.
	employee.IsActive = utils.ToPtr(false)
	assert.False(t, flow.IsEligible(context.Background(), shift, employee))
	employee.IsActive = utils.ToPtr(true)

	outOfArea := f.CreateEmployee("+15550000002", nurse.ID, *ward)
	assert.False(t, flow.IsEligible(context.Background(), shift, outOfArea))

	shift.NotifyAllAreas = true
	assert.True(t, flow.IsEligible(context.Background(), shift, outOfArea))
	shift.NotifyAllAreas = false

	assert.False(t, flow.IsEligible(context.Background(), shift, nil))
	assert.False(t, flow.IsEligible(context.Background(), nil, employee))
}

func TestIsEligibleAndEligibleEmployeesAgree(t *testing.T) {
	// The same predicate must gate notification targeting and interest
	// verification: anyone listed must verify, anyone excluded must not.
	f := apptest.NewFixtures()
	flow := NewEligibilityFlow(f.Employees)

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	ward := f.CreateArea("Ward")
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	all := []*models.Employee{
		f.CreateEmployee("+15550000001", nurse.ID, *icu),
		f.CreateEmployee("+15550000002", nurse.ID, *ward),
		f.CreateEmployee("+15550000003", nurse.ID),
	}

	eligible, err := flow.EligibleEmployees(context.Background(), shift)
	require.NoError(t, err)

	listed := make(map[uint]bool)
	for _, e := range eligible {
		listed[e.ID] = true
	}
	for _, e := range all {
		assert.Equal(t, listed[e.ID], flow.IsEligible(context.Background(), shift, e))
	}
}
