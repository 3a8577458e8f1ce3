// Package businessflow contains the core business logic for the shift fill engine
package businessflow

import (
	"context"

	"github.com/shiftwave/shiftwave/models"
	"github.com/shiftwave/shiftwave/repository"
	"github.com/shiftwave/shiftwave/utils"
)

// EligibilityFlow computes which employees a shift may be offered to. The
// same predicate gates both notification targeting and interest verification:
// only someone who was a legitimate notification target may claim interest.
// The computation reads current employee state, never state frozen at shift
// creation, so a later verification call re-evaluates against current
// membership.
type EligibilityFlow interface {
	EligibleEmployees(ctx context.Context, shift *models.Shift) ([]*models.Employee, error)
	IsEligible(ctx context.Context, shift *models.Shift, employee *models.Employee) bool
}

// EligibilityFlowImpl implements the eligibility flow
type EligibilityFlowImpl struct {
	employeeRepo repository.EmployeeRepository
}

// NewEligibilityFlow creates a new eligibility flow instance
func NewEligibilityFlow(employeeRepo repository.EmployeeRepository) EligibilityFlow {
	return &EligibilityFlowImpl{employeeRepo: employeeRepo}
}

// EligibleEmployees returns every employee eligible for the shift: active,
// opted in, phone normalizable, holding the shift's position, and either the
// shift notifies all areas or the employee belongs to the shift's area.
func (f *EligibilityFlowImpl) EligibleEmployees(ctx context.Context, shift *models.Shift) ([]*models.Employee, error) {
	var areaID *uint
	if !shift.NotifyAllAreas {
		areaID = &shift.AreaID
	}

	candidates, err := f.employeeRepo.ListNotifiable(ctx, shift.PositionID, areaID)
	if err != nil {
		return nil, err
	}

	// The repository narrows by position, activity, opt-in and area; the
	// phone check needs the normalizer and stays here.
	eligible := make([]*models.Employee, 0, len(candidates))
	for _, e := range candidates {
		if _, err := utils.NormalizePhone(e.Phone); err != nil {
			continue
		}
		eligible = append(eligible, e)
	}

	return eligible, nil
}

// IsEligible applies the same predicate to a single employee.
func (f *EligibilityFlowImpl) IsEligible(ctx context.Context, shift *models.Shift, employee *models.Employee) bool {
	if employee == nil || shift == nil {
		return false
	}
	if !utils.IsTrue(employee.IsActive) || !utils.IsTrue(employee.SMSOptIn) {
		return false
	}
	if _, err := utils.NormalizePhone(employee.Phone); err != nil {
		return false
	}
	if employee.PositionID != shift.PositionID {
		return false
	}
	if shift.NotifyAllAreas {
		return true
	}
	return employee.InArea(shift.AreaID)
}
