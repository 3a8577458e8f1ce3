// Package businessflow contains the core business logic for the shift fill engine
package businessflow

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shiftwave/shiftwave/app/dto"
	"github.com/shiftwave/shiftwave/models"
	"github.com/shiftwave/shiftwave/repository"
	"github.com/shiftwave/shiftwave/utils"
)

// ShiftFlow owns the shift lifecycle outside of assignment: creation with a
// unique public code, cancellation, expiry sweeps, reposting, and the bulk
// forms of those operations.
type ShiftFlow interface {
	Create(ctx context.Context, req *dto.CreateShiftRequest, actor Actor, metadata *ClientMetadata) (*dto.ShiftDTO, error)
	Get(ctx context.Context, shiftID uint) (*dto.ShiftDTO, error)
	List(ctx context.Context, filter models.ShiftFilter, limit, offset int) ([]dto.ShiftDTO, error)
	ListUrgent(ctx context.Context) ([]dto.ShiftDTO, error)
	Cancel(ctx context.Context, shiftID uint, actor Actor, metadata *ClientMetadata) (*dto.ShiftDTO, error)
	Repost(ctx context.Context, shiftID uint, actor Actor, metadata *ClientMetadata) (*dto.ShiftDTO, error)
	ExpireDue(ctx context.Context) (int, error)
	Messages(ctx context.Context, shiftID uint) ([]dto.MessageDTO, error)
	CancelMany(ctx context.Context, req *dto.BulkShiftRequest, actor Actor, metadata *ClientMetadata) []dto.BulkShiftResult
	RepostMany(ctx context.Context, req *dto.BulkShiftRequest, actor Actor, metadata *ClientMetadata) []dto.BulkShiftResult
	NotifyMany(ctx context.Context, req *dto.BulkShiftRequest, actor Actor, metadata *ClientMetadata) []dto.BulkShiftResult
}

// ShiftFlowConfig carries lifecycle tuning from the application config.
type ShiftFlowConfig struct {
	Location     *time.Location
	UrgentWindow time.Duration
	ExpiryGrace  time.Duration
}

// ShiftFlowImpl implements the shift flow
type ShiftFlowImpl struct {
	shiftRepo    repository.ShiftRepository
	positionRepo repository.PositionRepository
	areaRepo     repository.AreaRepository
	messageRepo  repository.MessageRepository
	auditRepo    repository.AuditLogRepository
	notification NotificationFlow
	cfg          ShiftFlowConfig
}

// NewShiftFlow creates a new shift flow instance
func NewShiftFlow(
	shiftRepo repository.ShiftRepository,
	positionRepo repository.PositionRepository,
	areaRepo repository.AreaRepository,
	messageRepo repository.MessageRepository,
	auditRepo repository.AuditLogRepository,
	notification NotificationFlow,
	cfg ShiftFlowConfig,
) ShiftFlow {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.UrgentWindow <= 0 {
		cfg.UrgentWindow = utils.DefaultUrgentWindow
	}
	if cfg.ExpiryGrace <= 0 {
		cfg.ExpiryGrace = utils.DefaultExpiryGrace
	}
	return &ShiftFlowImpl{
		shiftRepo:    shiftRepo,
		positionRepo: positionRepo,
		areaRepo:     areaRepo,
		messageRepo:  messageRepo,
		auditRepo:    auditRepo,
		notification: notification,
		cfg:          cfg,
	}
}

// Create posts a new available shift under a freshly allocated public code.
// Codes only need to be unique among currently available shifts, so a retired
// shift's code can recirculate. When req.Notify is set, the broadcast runs
// detached from the request: creation succeeds even if every send fails, and
// the outcome lands in the shift's notification metadata and message rows.
func (f *ShiftFlowImpl) Create(ctx context.Context, req *dto.CreateShiftRequest, actor Actor, metadata *ClientMetadata) (*dto.ShiftDTO, error) {
	position, err := f.positionRepo.ByID(ctx, req.PositionID)
	if err != nil {
		return nil, NewBusinessError("CREATE_FAILED", "Failed to load position", err)
	}
	if position == nil {
		return nil, NewBusinessError("POSITION_NOT_FOUND", "Position not found", ErrPositionNotFound)
	}

	area, err := f.areaRepo.ByID(ctx, req.AreaID)
	if err != nil {
		return nil, NewBusinessError("CREATE_FAILED", "Failed to load area", err)
	}
	if area == nil {
		return nil, NewBusinessError("AREA_NOT_FOUND", "Area not found", ErrAreaNotFound)
	}

	shiftDate, err := time.ParseInLocation("2006-01-02", req.ShiftDate, f.cfg.Location)
	if err != nil {
		return nil, NewBusinessError("CREATE_FAILED", "Invalid shift date", err)
	}

	shift, err := f.createWithCode(ctx, func(code string) *models.Shift {
		return &models.Shift{
			UUID:           uuid.New(),
			PositionID:     position.ID,
			Position:       position,
			AreaID:         area.ID,
			Area:           area,
			Location:       req.Location,
			ShiftDate:      shiftDate,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			Requirements:   req.Requirements,
			PostedByID:     actor.ID,
			PostedByName:   actor.Name,
			Status:         models.ShiftStatusAvailable,
			Code:           code,
			BonusAmount:    req.BonusAmount,
			NotifyAllAreas: req.NotifyAllAreas,
		}
	})
	if err != nil {
		if IsCodeCollision(err) {
			return nil, NewBusinessError("CODE_ALLOCATION_FAILED", "Could not allocate a shift code", err)
		}
		return nil, NewBusinessError("CREATE_FAILED", "Failed to save shift", err)
	}

	if err := writeAudit(ctx, f.auditRepo, actor, models.AuditActionShiftCreated, &shift.ID, &shift.Code, nil, true, nil); err != nil {
		log.Printf("audit write failed for shift %s creation: %v", shift.Code, err)
	}

	if req.Notify {
		notifyReq := &dto.NotifyShiftRequest{TemplateName: req.TemplateName}
		dispatchCtx := context.WithoutCancel(ctx)
		go func() {
			if _, err := f.notification.Notify(dispatchCtx, shift.ID, notifyReq, models.MessageTypeShiftNotification, actor, metadata); err != nil {
				log.Printf("broadcast failed for new shift %s: %v", shift.Code, err)
			}
		}()
	}

	result := ToShiftDTO(*shift)
	return &result, nil
}

// Get loads one shift for the supervisor view.
func (f *ShiftFlowImpl) Get(ctx context.Context, shiftID uint) (*dto.ShiftDTO, error) {
	shift, err := f.shiftRepo.ByID(ctx, shiftID)
	if err != nil {
		return nil, NewBusinessError("LOOKUP_FAILED", "Failed to load shift", err)
	}
	if shift == nil {
		return nil, NewBusinessError("SHIFT_NOT_FOUND", "Shift not found", ErrShiftNotFound)
	}
	result := ToShiftDTO(*shift)
	return &result, nil
}

// List returns shifts matching the filter, newest shift date first.
func (f *ShiftFlowImpl) List(ctx context.Context, filter models.ShiftFilter, limit, offset int) ([]dto.ShiftDTO, error) {
	shifts, err := f.shiftRepo.ByFilter(ctx, filter, "shift_date DESC, id DESC", limit, offset)
	if err != nil {
		return nil, NewBusinessError("LOOKUP_FAILED", "Failed to list shifts", err)
	}
	out := make([]dto.ShiftDTO, 0, len(shifts))
	for _, shift := range shifts {
		out = append(out, ToShiftDTO(*shift))
	}
	return out, nil
}

// ListUrgent returns available shifts starting within the urgent window,
// soonest first. Shifts already past their start are excluded even if the
// expiry sweep has not caught them yet.
func (f *ShiftFlowImpl) ListUrgent(ctx context.Context) ([]dto.ShiftDTO, error) {
	now := utils.UTCNow()
	horizon := now.Add(f.cfg.UrgentWindow)

	status := models.ShiftStatusAvailable
	filter := models.ShiftFilter{
		Status:     &status,
		DateBefore: utils.ToPtr(horizon.In(f.cfg.Location).AddDate(0, 0, 1)),
	}
	shifts, err := f.shiftRepo.ByFilter(ctx, filter, "shift_date ASC, start_time ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("LOOKUP_FAILED", "Failed to list shifts", err)
	}

	out := make([]dto.ShiftDTO, 0, len(shifts))
	for _, shift := range shifts {
		startsAt, err := shift.StartsAt(f.cfg.Location)
		if err != nil {
			log.Printf("skipping shift %s with unparseable start time %q", shift.Code, shift.StartTime)
			continue
		}
		if startsAt.After(now) && !startsAt.After(horizon) {
			out = append(out, ToShiftDTO(*shift))
		}
	}
	return out, nil
}

// Cancel retires an available shift. Cancellation reuses the expired state;
// claimed shifts cannot be cancelled, and cancelling twice reports the shift
// as no longer available.
func (f *ShiftFlowImpl) Cancel(ctx context.Context, shiftID uint, actor Actor, metadata *ClientMetadata) (*dto.ShiftDTO, error) {
	shift, err := f.shiftRepo.ByID(ctx, shiftID)
	if err != nil {
		return nil, NewBusinessError("CANCEL_FAILED", "Failed to load shift", err)
	}
	if shift == nil {
		return nil, NewBusinessError("SHIFT_NOT_FOUND", "Shift not found", ErrShiftNotFound)
	}

	expired, err := f.shiftRepo.ExpireAvailable(ctx, shift.ID)
	if err != nil {
		return nil, NewBusinessError("CANCEL_FAILED", "Failed to cancel shift", err)
	}
	if !expired {
		return nil, NewBusinessError("SHIFT_NOT_AVAILABLE", "Shift is not available", ErrShiftNotAvailable)
	}

	shiftsExpired.Inc()

	change := models.StatusChange{Before: models.ShiftStatusAvailable, After: models.ShiftStatusExpired}
	if err := writeAudit(ctx, f.auditRepo, actor, models.AuditActionShiftCancelled, &shift.ID, &shift.Code, change, true, nil); err != nil {
		log.Printf("audit write failed for shift %s cancellation: %v", shift.Code, err)
	}

	shift.Status = models.ShiftStatusExpired
	result := ToShiftDTO(*shift)
	return &result, nil
}

// Repost copies a retired shift into a fresh available one under a new code.
// The original keeps its state and history; notification metadata starts
// over on the copy. An available original is rejected so the same opening is
// never offered under two codes at once.
func (f *ShiftFlowImpl) Repost(ctx context.Context, shiftID uint, actor Actor, metadata *ClientMetadata) (*dto.ShiftDTO, error) {
	original, err := f.shiftRepo.ByID(ctx, shiftID)
	if err != nil {
		return nil, NewBusinessError("REPOST_FAILED", "Failed to load shift", err)
	}
	if original == nil {
		return nil, NewBusinessError("SHIFT_NOT_FOUND", "Shift not found", ErrShiftNotFound)
	}
	if original.IsAvailable() {
		return nil, NewBusinessError("SHIFT_STILL_AVAILABLE", "Shift is still open under its current code", ErrShiftNotAvailable)
	}

	shift, err := f.createWithCode(ctx, func(code string) *models.Shift {
		return &models.Shift{
			UUID:           uuid.New(),
			PositionID:     original.PositionID,
			Position:       original.Position,
			AreaID:         original.AreaID,
			Area:           original.Area,
			Location:       original.Location,
			ShiftDate:      original.ShiftDate,
			StartTime:      original.StartTime,
			EndTime:        original.EndTime,
			Requirements:   original.Requirements,
			PostedByID:     actor.ID,
			PostedByName:   actor.Name,
			Status:         models.ShiftStatusAvailable,
			Code:           code,
			BonusAmount:    original.BonusAmount,
			NotifyAllAreas: original.NotifyAllAreas,
		}
	})
	if err != nil {
		if IsCodeCollision(err) {
			return nil, NewBusinessError("CODE_ALLOCATION_FAILED", "Could not allocate a shift code", err)
		}
		return nil, NewBusinessError("REPOST_FAILED", "Failed to save reposted shift", err)
	}

	auditMeta := map[string]uint{"original_shift_id": original.ID, "new_shift_id": shift.ID}
	if err := writeAudit(ctx, f.auditRepo, actor, models.AuditActionShiftReposted, &shift.ID, &shift.Code, auditMeta, true, nil); err != nil {
		log.Printf("audit write failed for shift %s repost: %v", shift.Code, err)
	}

	result := ToShiftDTO(*shift)
	return &result, nil
}

// ExpireDue sweeps available shifts whose start instant plus grace has
// passed, and reports how many it expired. Each expiry is its own
// compare-and-set, so a sweep racing an assignment never clobbers a claim.
func (f *ShiftFlowImpl) ExpireDue(ctx context.Context) (int, error) {
	now := utils.UTCNow()

	due, err := f.shiftRepo.ListAvailableDueBy(ctx, now.In(f.cfg.Location))
	if err != nil {
		return 0, NewBusinessError("SWEEP_FAILED", "Failed to list due shifts", err)
	}

	expired := 0
	system := Actor{Name: "system"}
	for _, shift := range due {
		startsAt, err := shift.StartsAt(f.cfg.Location)
		if err != nil {
			log.Printf("skipping shift %s with unparseable start time %q", shift.Code, shift.StartTime)
			continue
		}
		if now.Before(startsAt.Add(f.cfg.ExpiryGrace)) {
			continue
		}

		ok, err := f.shiftRepo.ExpireAvailable(ctx, shift.ID)
		if err != nil {
			return expired, NewBusinessError("SWEEP_FAILED", "Failed to expire shift", err)
		}
		if !ok {
			continue
		}

		expired++
		shiftsExpired.Inc()
		change := models.StatusChange{Before: models.ShiftStatusAvailable, After: models.ShiftStatusExpired}
		if err := writeAudit(ctx, f.auditRepo, system, models.AuditActionShiftExpired, &shift.ID, &shift.Code, change, true, nil); err != nil {
			log.Printf("audit write failed for shift %s expiry: %v", shift.Code, err)
		}
	}

	return expired, nil
}

// Messages returns the outbound and inbound traffic tied to a shift.
func (f *ShiftFlowImpl) Messages(ctx context.Context, shiftID uint) ([]dto.MessageDTO, error) {
	shift, err := f.shiftRepo.ByID(ctx, shiftID)
	if err != nil {
		return nil, NewBusinessError("LOOKUP_FAILED", "Failed to load shift", err)
	}
	if shift == nil {
		return nil, NewBusinessError("SHIFT_NOT_FOUND", "Shift not found", ErrShiftNotFound)
	}

	messages, err := f.messageRepo.ListByShift(ctx, shiftID)
	if err != nil {
		return nil, NewBusinessError("LOOKUP_FAILED", "Failed to list messages", err)
	}

	out := make([]dto.MessageDTO, 0, len(messages))
	for _, m := range messages {
		out = append(out, ToMessageDTO(*m))
	}
	return out, nil
}

// CancelMany cancels each named shift independently: one failure never rolls
// back or halts the others.
func (f *ShiftFlowImpl) CancelMany(ctx context.Context, req *dto.BulkShiftRequest, actor Actor, metadata *ClientMetadata) []dto.BulkShiftResult {
	results := make([]dto.BulkShiftResult, 0, len(req.ShiftIDs))
	for _, id := range req.ShiftIDs {
		_, err := f.Cancel(ctx, id, actor, metadata)
		results = append(results, toBulkResult(id, nil, err))
	}
	f.auditBulk(ctx, actor, models.AuditActionBulkCancel, results)
	return results
}

// RepostMany reposts each named shift independently.
func (f *ShiftFlowImpl) RepostMany(ctx context.Context, req *dto.BulkShiftRequest, actor Actor, metadata *ClientMetadata) []dto.BulkShiftResult {
	results := make([]dto.BulkShiftResult, 0, len(req.ShiftIDs))
	for _, id := range req.ShiftIDs {
		created, err := f.Repost(ctx, id, actor, metadata)
		var newID *uint
		if created != nil {
			newID = &created.ID
		}
		results = append(results, toBulkResult(id, newID, err))
	}
	f.auditBulk(ctx, actor, models.AuditActionBulkRepost, results)
	return results
}

// NotifyMany re-broadcasts each named shift independently with the default
// bulk template.
func (f *ShiftFlowImpl) NotifyMany(ctx context.Context, req *dto.BulkShiftRequest, actor Actor, metadata *ClientMetadata) []dto.BulkShiftResult {
	results := make([]dto.BulkShiftResult, 0, len(req.ShiftIDs))
	for _, id := range req.ShiftIDs {
		_, err := f.notification.Notify(ctx, id, &dto.NotifyShiftRequest{}, models.MessageTypeBulk, actor, metadata)
		results = append(results, toBulkResult(id, nil, err))
	}
	f.auditBulk(ctx, actor, models.AuditActionBulkNotify, results)
	return results
}

// createWithCode draws codes until a built shift inserts cleanly. CodeInUse
// pre-screens cheaply, but two concurrent posters can pass it with the same
// code; the partial unique index on available codes is the authority, and a
// duplicate-key rejection just burns one attempt. The code space is large
// relative to concurrent availability, so exhausting the budget signals
// something systemic.
func (f *ShiftFlowImpl) createWithCode(ctx context.Context, build func(code string) *models.Shift) (*models.Shift, error) {
	for attempt := 0; attempt < utils.ShiftCodeMaxAttempts; attempt++ {
		code, err := utils.GenerateShiftCode()
		if err != nil {
			return nil, err
		}
		inUse, err := f.shiftRepo.CodeInUse(ctx, code)
		if err != nil {
			return nil, err
		}
		if inUse {
			continue
		}

		shift := build(code)
		err = f.shiftRepo.Save(ctx, shift)
		if err == nil {
			return shift, nil
		}
		if !repository.IsDuplicateKey(err) {
			return nil, err
		}
	}
	return nil, ErrCodeCollision
}

// auditBulk records the aggregate outcome of a bulk operation.
func (f *ShiftFlowImpl) auditBulk(ctx context.Context, actor Actor, action string, results []dto.BulkShiftResult) {
	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	summary := map[string]int{"requested": len(results), "succeeded": succeeded, "failed": len(results) - succeeded}
	if err := writeAudit(ctx, f.auditRepo, actor, action, nil, nil, summary, succeeded == len(results), nil); err != nil {
		log.Printf("audit write failed for %s: %v", action, err)
	}
}

// toBulkResult maps one per-shift outcome into the bulk response row.
func toBulkResult(shiftID uint, newShiftID *uint, err error) dto.BulkShiftResult {
	result := dto.BulkShiftResult{ShiftID: shiftID, Success: err == nil, NewShiftID: newShiftID}
	if err != nil {
		var be *BusinessError
		if errors.As(err, &be) {
			result.ErrorCode = &be.Code
			result.Error = &be.Message
		} else {
			result.Error = utils.ToPtr(err.Error())
		}
	}
	return result
}
