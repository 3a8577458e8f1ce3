package businessflow

import (
	"context"
	"sync"
	"testing"

	"github.com/shiftwave/shiftwave/app/dto"
	"github.com/shiftwave/shiftwave/models"
	apptest "github.com/shiftwave/shiftwave/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInterestTestFlow(f *apptest.Fixtures) InterestFlow {
	return NewInterestFlow(nil, f.Shifts, f.Employees, f.Interests, f.Audits, NewEligibilityFlow(f.Employees))
}

func TestExpressInterestRecordsOnce(t *testing.T) {
	f := apptest.NewFixtures()
	flow := newInterestTestFlow(f)

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	employee := f.CreateEmployee("+15550000001", nurse.ID, *icu)
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	req := &dto.ExpressInterestRequest{Phone: "+15550000001"}
	resp, err := flow.ExpressInterest(context.Background(), "ABC234", req, NewClientMetadata("1.2.3.4", "test"))
	require.NoError(t, err)
	assert.False(t, resp.AlreadyInterested)
	assert.Equal(t, "ABC234", resp.ShiftCode)

	interests, err := f.Interests.ListByShift(context.Background(), shift.ID)
	require.NoError(t, err)
	require.Len(t, interests, 1)
	assert.Equal(t, employee.ID, interests[0].EmployeeID)

	// The recorded interest is audited.
	audits, err := f.Audits.ListByAction(context.Background(), models.AuditActionInterestRecorded, 0, 0)
	require.NoError(t, err)
	assert.Len(t, audits, 1)
}

func TestExpressInterestIsIdempotent(t *testing.T) {
	f := apptest.NewFixtures()
	flow := newInterestTestFlow(f)

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	f.CreateEmployee("+15550000001", nurse.ID, *icu)
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	// The same phone in a different format must map to the same employee.
	first, err := flow.ExpressInterest(context.Background(), "ABC234", &dto.ExpressInterestRequest{Phone: "+15550000001"}, nil)
	require.NoError(t, err)
	second, err := flow.ExpressInterest(context.Background(), "ABC234", &dto.ExpressInterestRequest{Phone: "(555) 000-0001"}, nil)
	require.NoError(t, err)

	assert.False(t, first.AlreadyInterested)
	assert.True(t, second.AlreadyInterested)

	interests, err := f.Interests.ListByShift(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Len(t, interests, 1)
}

func TestExpressInterestConcurrentDoubleTap(t *testing.T) {
	f := apptest.NewFixtures()
	flow := newInterestTestFlow(f)

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	f.CreateEmployee("+15550000001", nurse.ID, *icu)
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	const attempts = 10
	recorded := make([]bool, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := flow.ExpressInterest(context.Background(), "ABC234", &dto.ExpressInterestRequest{Phone: "+15550000001"}, nil)
			if err == nil {
				recorded[i] = !resp.AlreadyInterested
			}
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, won := range recorded {
		if won {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one attempt records the interest")

	interests, err := f.Interests.ListByShift(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Len(t, interests, 1)
}

func TestExpressInterestUnknownCode(t *testing.T) {
	f := apptest.NewFixtures()
	flow := newInterestTestFlow(f)

	_, err := flow.ExpressInterest(context.Background(), "NOPE22", &dto.ExpressInterestRequest{Phone: "+15550000001"}, nil)
	assert.True(t, IsShiftNotFound(err))
}

func TestExpressInterestClaimedShiftCodeIsGone(t *testing.T) {
	f := apptest.NewFixtures()
	flow := newInterestTestFlow(f)

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	employee := f.CreateEmployee("+15550000001", nurse.ID, *icu)
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	claimed, err := f.Shifts.ClaimAvailable(context.Background(), shift.ID, employee.ID)
	require.NoError(t, err)
	require.True(t, claimed)

	// Codes on claimed shifts are not public anymore.
	_, err = flow.ExpressInterest(context.Background(), "ABC234", &dto.ExpressInterestRequest{Phone: "+15550000001"}, nil)
	assert.True(t, IsShiftNotFound(err))
}

func TestExpressInterestUnverifiedPhone(t *testing.T) {
	f := apptest.NewFixtures()
	flow := newInterestTestFlow(f)

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	// No employee has this phone.
	_, err := flow.ExpressInterest(context.Background(), "ABC234", &dto.ExpressInterestRequest{Phone: "+15559999999"}, nil)
	assert.True(t, IsNotEligible(err))

	// The rejection is audited as a failure, without recording interest.
	audits, err := f.Audits.ListByAction(context.Background(), models.AuditActionInterestRejected, 0, 0)
	require.NoError(t, err)
	require.Len(t, audits, 1)
	assert.True(t, audits[0].IsFailed())

	interests, err := f.Interests.ListByShift(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Empty(t, interests)
}

func TestExpressInterestIneligibleEmployee(t *testing.T) {
	f := apptest.NewFixtures()
	flow := newInterestTestFlow(f)

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	ward := f.CreateArea("Ward")
	// Right position, wrong area.
	f.CreateEmployee("+15550000001", nurse.ID, *ward)
	f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	_, err := flow.ExpressInterest(context.Background(), "ABC234", &dto.ExpressInterestRequest{Phone: "+15550000001"}, nil)
	assert.True(t, IsNotEligible(err))
}

func TestShiftByCode(t *testing.T) {
	f := apptest.NewFixtures()
	flow := newInterestTestFlow(f)

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")
	shift.Position = nurse
	shift.Area = icu

	summary, err := flow.ShiftByCode(context.Background(), "ABC234")
	require.NoError(t, err)
	assert.Equal(t, "ABC234", summary.Code)
	assert.Equal(t, "Nurse", summary.Position)
	assert.Equal(t, "available", summary.Status)

	_, err = flow.ShiftByCode(context.Background(), "NOPE22")
	assert.True(t, IsShiftNotFound(err))
}

func TestListInterestedSurvivesClaim(t *testing.T) {
	f := apptest.NewFixtures()
	flow := newInterestTestFlow(f)

	nurse := f.CreatePosition("Nurse")
	icu := f.CreateArea("ICU")
	employee := f.CreateEmployee("+15550000001", nurse.ID, *icu)
	shift := f.CreateAvailableShift(nurse.ID, icu.ID, "ABC234")

	_, err := flow.ExpressInterest(context.Background(), "ABC234", &dto.ExpressInterestRequest{Phone: "+15550000001"}, nil)
	require.NoError(t, err)

	// The ledger survives the shift leaving the available state.
	claimed, err := f.Shifts.ClaimAvailable(context.Background(), shift.ID, employee.ID)
	require.NoError(t, err)
	require.True(t, claimed)

	interested, err := flow.ListInterested(context.Background(), shift.ID)
	require.NoError(t, err)
	require.Len(t, interested, 1)
	assert.Equal(t, employee.ID, interested[0].EmployeeID)
}
