// Package businessflow contains the core business logic for the shift fill engine
package businessflow

import (
	"context"
	"log"

	"github.com/shiftwave/shiftwave/app/dto"
	"github.com/shiftwave/shiftwave/models"
	"github.com/shiftwave/shiftwave/repository"
	"github.com/shiftwave/shiftwave/utils"
	"gorm.io/gorm"
)

// InterestFlow records and queries deduplicated expressions of interest tied
// to a shift and a phone-verified employee identity.
type InterestFlow interface {
	ExpressInterest(ctx context.Context, code string, req *dto.ExpressInterestRequest, metadata *ClientMetadata) (*dto.ExpressInterestResponse, error)
	ShiftByCode(ctx context.Context, code string) (*dto.PublicShiftDTO, error)
	ListInterested(ctx context.Context, shiftID uint) ([]dto.InterestDTO, error)
}

// InterestFlowImpl implements the interest flow
type InterestFlowImpl struct {
	db           *gorm.DB
	shiftRepo    repository.ShiftRepository
	employeeRepo repository.EmployeeRepository
	interestRepo repository.ShiftInterestRepository
	auditRepo    repository.AuditLogRepository
	eligibility  EligibilityFlow
}

// NewInterestFlow creates a new interest flow instance
func NewInterestFlow(
	db *gorm.DB,
	shiftRepo repository.ShiftRepository,
	employeeRepo repository.EmployeeRepository,
	interestRepo repository.ShiftInterestRepository,
	auditRepo repository.AuditLogRepository,
	eligibility EligibilityFlow,
) InterestFlow {
	return &InterestFlowImpl{
		db:           db,
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		interestRepo: interestRepo,
		auditRepo:    auditRepo,
		eligibility:  eligibility,
	}
}

// ExpressInterest verifies the caller's phone against the shift's eligible
// set and records interest at most once per (shift, employee) pair. The
// uniqueness check and insert are one atomic unit, so a double-tap or SMS
// double-delivery can never produce two rows: the losing insert simply
// reports alreadyInterested.
//
// ErrShiftNotFound and ErrNotEligible are distinguished here for logs and
// audits; the public handler may collapse them so responses do not leak which
// phone numbers are registered.
func (f *InterestFlowImpl) ExpressInterest(ctx context.Context, code string, req *dto.ExpressInterestRequest, metadata *ClientMetadata) (*dto.ExpressInterestResponse, error) {
	shift, err := f.shiftRepo.ByAvailableCode(ctx, code)
	if err != nil {
		return nil, NewBusinessError("INTEREST_FAILED", "Failed to resolve shift code", err)
	}
	if shift == nil {
		return nil, NewBusinessError("SHIFT_NOT_FOUND", "No available shift for code", ErrShiftNotFound)
	}

	phone, err := utils.NormalizePhone(req.Phone)
	if err != nil {
		return nil, NewBusinessError("NOT_ELIGIBLE", "Phone did not verify", ErrNotEligible)
	}

	employee, err := f.employeeRepo.ByNormalizedPhone(ctx, phone)
	if err != nil {
		return nil, NewBusinessError("INTEREST_FAILED", "Failed to look up employee", err)
	}
	if employee == nil || !f.eligibility.IsEligible(ctx, shift, employee) {
		f.auditRejection(ctx, shift, phone)
		return nil, NewBusinessError("NOT_ELIGIBLE", "Phone did not verify against the shift's eligible set", ErrNotEligible)
	}

	// Fast path for repeat taps. Insert below remains the authority under
	// concurrency.
	already, err := f.interestRepo.Exists(ctx, shift.ID, employee.ID)
	if err != nil {
		return nil, NewBusinessError("INTEREST_FAILED", "Failed to check interest", err)
	}
	if already {
		return &dto.ExpressInterestResponse{
			AlreadyInterested: true,
			ShiftCode:         shift.Code,
		}, nil
	}

	// The interest row and its audit entry commit together.
	interest := &models.ShiftInterest{
		ShiftID:    shift.ID,
		EmployeeID: employee.ID,
	}
	var inserted bool
	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		var txErr error
		inserted, txErr = f.interestRepo.Insert(txCtx, interest)
		if txErr != nil {
			return txErr
		}
		if !inserted {
			return nil
		}
		actor := Actor{ID: employee.ID, Name: employee.FullName()}
		return writeAudit(txCtx, f.auditRepo, actor, models.AuditActionInterestRecorded, &shift.ID, &shift.Code, nil, true, nil)
	})
	if err != nil {
		return nil, NewBusinessError("INTEREST_FAILED", "Failed to record interest", err)
	}

	if inserted {
		interestRecorded.Inc()
	}

	return &dto.ExpressInterestResponse{
		AlreadyInterested: !inserted,
		ShiftCode:         shift.Code,
	}, nil
}

// ShiftByCode serves the anonymous public shift summary.
func (f *InterestFlowImpl) ShiftByCode(ctx context.Context, code string) (*dto.PublicShiftDTO, error) {
	shift, err := f.shiftRepo.ByAvailableCode(ctx, code)
	if err != nil {
		return nil, NewBusinessError("LOOKUP_FAILED", "Failed to resolve shift code", err)
	}
	if shift == nil {
		return nil, NewBusinessError("SHIFT_NOT_FOUND", "No available shift for code", ErrShiftNotFound)
	}

	summary := ToPublicShiftDTO(*shift)
	return &summary, nil
}

// ListInterested returns the supervisor view of a shift's ledger, oldest
// first. Rows survive the shift leaving the available state.
func (f *InterestFlowImpl) ListInterested(ctx context.Context, shiftID uint) ([]dto.InterestDTO, error) {
	shift, err := f.shiftRepo.ByID(ctx, shiftID)
	if err != nil {
		return nil, NewBusinessError("LOOKUP_FAILED", "Failed to load shift", err)
	}
	if shift == nil {
		return nil, NewBusinessError("SHIFT_NOT_FOUND", "Shift not found", ErrShiftNotFound)
	}

	interests, err := f.interestRepo.ListByShift(ctx, shiftID)
	if err != nil {
		return nil, NewBusinessError("LOOKUP_FAILED", "Failed to list interest", err)
	}

	out := make([]dto.InterestDTO, 0, len(interests))
	for _, interest := range interests {
		out = append(out, ToInterestDTO(*interest))
	}
	return out, nil
}

// auditRejection records a failed verification without exposing the phone.
func (f *InterestFlowImpl) auditRejection(ctx context.Context, shift *models.Shift, phone string) {
	errMsg := "phone " + utils.MaskPhone(phone) + " not in eligible set"
	actor := Actor{Name: "public"}
	if err := writeAudit(ctx, f.auditRepo, actor, models.AuditActionInterestRejected, &shift.ID, &shift.Code, nil, false, &errMsg); err != nil {
		log.Printf("audit write failed for rejected interest in shift %s: %v", shift.Code, err)
	}
}
