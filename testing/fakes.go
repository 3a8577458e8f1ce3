// Package testing provides in-memory repository fakes and fixtures for flow tests
package testing

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shiftwave/shiftwave/models"
	"github.com/shiftwave/shiftwave/repository"
	"gorm.io/gorm"
)

// FakeShiftRepository is a mutex-guarded in-memory ShiftRepository. The
// compare-and-set methods hold the lock across check and write, matching the
// atomicity the SQL implementation gets from its guarded UPDATE.
type FakeShiftRepository struct {
	mu     sync.Mutex
	shifts map[uint]*models.Shift
	nextID uint
}

var _ repository.ShiftRepository = (*FakeShiftRepository)(nil)

func NewFakeShiftRepository() *FakeShiftRepository {
	return &FakeShiftRepository{shifts: make(map[uint]*models.Shift), nextID: 1}
}

func (r *FakeShiftRepository) ByID(ctx context.Context, id uint) (*models.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shifts[id], nil
}

func (r *FakeShiftRepository) Save(ctx context.Context, shift *models.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Mirrors the partial unique index on available shift codes.
	if shift.Status == models.ShiftStatusAvailable {
		for _, existing := range r.shifts {
			if existing.ID != shift.ID && existing.Status == models.ShiftStatusAvailable && existing.Code == shift.Code {
				return fmt.Errorf("duplicate code %s: %w", shift.Code, gorm.ErrDuplicatedKey)
			}
		}
	}
	if shift.ID == 0 {
		shift.ID = r.nextID
		r.nextID++
	}
	if shift.CreatedAt.IsZero() {
		shift.CreatedAt = time.Now().UTC()
	}
	shift.UpdatedAt = time.Now().UTC()
	r.shifts[shift.ID] = shift
	return nil
}

func (r *FakeShiftRepository) SaveBatch(ctx context.Context, shifts []*models.Shift) error {
	for _, s := range shifts {
		if err := r.Save(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (r *FakeShiftRepository) ByFilter(ctx context.Context, filter models.ShiftFilter, orderBy string, limit, offset int) ([]*models.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Shift
	for _, s := range r.shifts {
		if matchesShiftFilter(s, filter) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

func (r *FakeShiftRepository) Count(ctx context.Context, filter models.ShiftFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, s := range r.shifts {
		if matchesShiftFilter(s, filter) {
			count++
		}
	}
	return count, nil
}

func matchesShiftFilter(s *models.Shift, filter models.ShiftFilter) bool {
	if filter.ID != nil && s.ID != *filter.ID {
		return false
	}
	if filter.PositionID != nil && s.PositionID != *filter.PositionID {
		return false
	}
	if filter.AreaID != nil && s.AreaID != *filter.AreaID {
		return false
	}
	if filter.Status != nil && s.Status != *filter.Status {
		return false
	}
	if filter.Code != nil && s.Code != *filter.Code {
		return false
	}
	if filter.PostedByID != nil && s.PostedByID != *filter.PostedByID {
		return false
	}
	if filter.NotifyAllAreas != nil && s.NotifyAllAreas != *filter.NotifyAllAreas {
		return false
	}
	if filter.DateAfter != nil && s.ShiftDate.Before(*filter.DateAfter) {
		return false
	}
	if filter.DateBefore != nil && s.ShiftDate.After(*filter.DateBefore) {
		return false
	}
	return true
}

func (r *FakeShiftRepository) ByAvailableCode(ctx context.Context, code string) (*models.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.shifts {
		if s.Code == code && s.Status == models.ShiftStatusAvailable {
			return s, nil
		}
	}
	return nil, nil
}

func (r *FakeShiftRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.shifts {
		if s.Code == code && s.Status == models.ShiftStatusAvailable {
			return true, nil
		}
	}
	return false, nil
}

func (r *FakeShiftRepository) ListAvailableDueBy(ctx context.Context, date time.Time) ([]*models.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Shift
	for _, s := range r.shifts {
		if s.Status == models.ShiftStatusAvailable && !s.ShiftDate.After(date) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ShiftDate.Before(out[j].ShiftDate) })
	return out, nil
}

func (r *FakeShiftRepository) ClaimAvailable(ctx context.Context, shiftID, employeeID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shifts[shiftID]
	if !ok || s.Status != models.ShiftStatusAvailable {
		return false, nil
	}
	s.Status = models.ShiftStatusClaimed
	s.AssignedEmployeeID = &employeeID
	s.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *FakeShiftRepository) ExpireAvailable(ctx context.Context, shiftID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shifts[shiftID]
	if !ok || s.Status != models.ShiftStatusAvailable {
		return false, nil
	}
	s.Status = models.ShiftStatusExpired
	s.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *FakeShiftRepository) UpdateNotificationMeta(ctx context.Context, shiftID uint, at time.Time, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shifts[shiftID]
	if !ok {
		return nil
	}
	s.LastNotifiedAt = &at
	s.NotificationCount = count
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// FakeEmployeeRepository is a mutex-guarded in-memory EmployeeRepository
type FakeEmployeeRepository struct {
	mu        sync.Mutex
	employees map[uint]*models.Employee
	nextID    uint
}

var _ repository.EmployeeRepository = (*FakeEmployeeRepository)(nil)

func NewFakeEmployeeRepository() *FakeEmployeeRepository {
	return &FakeEmployeeRepository{employees: make(map[uint]*models.Employee), nextID: 1}
}

func (r *FakeEmployeeRepository) ByID(ctx context.Context, id uint) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.employees[id], nil
}

func (r *FakeEmployeeRepository) Save(ctx context.Context, employee *models.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if employee.ID == 0 {
		employee.ID = r.nextID
		r.nextID++
	}
	r.employees[employee.ID] = employee
	return nil
}

func (r *FakeEmployeeRepository) SaveBatch(ctx context.Context, employees []*models.Employee) error {
	for _, e := range employees {
		if err := r.Save(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *FakeEmployeeRepository) ByFilter(ctx context.Context, filter models.EmployeeFilter, orderBy string, limit, offset int) ([]*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Employee
	for _, e := range r.employees {
		if filter.ID != nil && e.ID != *filter.ID {
			continue
		}
		if filter.NormalizedPhone != nil && e.NormalizedPhone != *filter.NormalizedPhone {
			continue
		}
		if filter.PositionID != nil && e.PositionID != *filter.PositionID {
			continue
		}
		if filter.IsActive != nil && (e.IsActive == nil || *e.IsActive != *filter.IsActive) {
			continue
		}
		if filter.SMSOptIn != nil && (e.SMSOptIn == nil || *e.SMSOptIn != *filter.SMSOptIn) {
			continue
		}
		if filter.AreaID != nil && !e.InArea(*filter.AreaID) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

func (r *FakeEmployeeRepository) Count(ctx context.Context, filter models.EmployeeFilter) (int64, error) {
	all, err := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(all)), err
}

func (r *FakeEmployeeRepository) ByNormalizedPhone(ctx context.Context, normalizedPhone string) (*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if e.NormalizedPhone == normalizedPhone {
			return e, nil
		}
	}
	return nil, nil
}

func (r *FakeEmployeeRepository) ListNotifiable(ctx context.Context, positionID uint, areaID *uint) ([]*models.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Employee
	for _, e := range r.employees {
		if e.PositionID != positionID {
			continue
		}
		if e.IsActive == nil || !*e.IsActive {
			continue
		}
		if e.SMSOptIn == nil || !*e.SMSOptIn {
			continue
		}
		if areaID != nil && !e.InArea(*areaID) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FakeShiftInterestRepository is a mutex-guarded in-memory
// ShiftInterestRepository. Insert enforces the (shift, employee) uniqueness
// under the lock the way the SQL implementation relies on the unique index.
type FakeShiftInterestRepository struct {
	mu        sync.Mutex
	interests map[uint]*models.ShiftInterest
	nextID    uint
}

var _ repository.ShiftInterestRepository = (*FakeShiftInterestRepository)(nil)

func NewFakeShiftInterestRepository() *FakeShiftInterestRepository {
	return &FakeShiftInterestRepository{interests: make(map[uint]*models.ShiftInterest), nextID: 1}
}

func (r *FakeShiftInterestRepository) ByID(ctx context.Context, id uint) (*models.ShiftInterest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interests[id], nil
}

func (r *FakeShiftInterestRepository) Save(ctx context.Context, interest *models.ShiftInterest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveLocked(interest)
	return nil
}

func (r *FakeShiftInterestRepository) saveLocked(interest *models.ShiftInterest) {
	if interest.ID == 0 {
		interest.ID = r.nextID
		r.nextID++
	}
	if interest.CreatedAt.IsZero() {
		interest.CreatedAt = time.Now().UTC()
	}
	r.interests[interest.ID] = interest
}

func (r *FakeShiftInterestRepository) SaveBatch(ctx context.Context, interests []*models.ShiftInterest) error {
	for _, i := range interests {
		if err := r.Save(ctx, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *FakeShiftInterestRepository) ByFilter(ctx context.Context, filter models.ShiftInterestFilter, orderBy string, limit, offset int) ([]*models.ShiftInterest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.ShiftInterest
	for _, i := range r.interests {
		if filter.ShiftID != nil && i.ShiftID != *filter.ShiftID {
			continue
		}
		if filter.EmployeeID != nil && i.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

func (r *FakeShiftInterestRepository) Count(ctx context.Context, filter models.ShiftInterestFilter) (int64, error) {
	all, err := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(all)), err
}

func (r *FakeShiftInterestRepository) Insert(ctx context.Context, interest *models.ShiftInterest) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.interests {
		if existing.ShiftID == interest.ShiftID && existing.EmployeeID == interest.EmployeeID {
			return false, nil
		}
	}
	r.saveLocked(interest)
	return true, nil
}

func (r *FakeShiftInterestRepository) Exists(ctx context.Context, shiftID, employeeID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.interests {
		if i.ShiftID == shiftID && i.EmployeeID == employeeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *FakeShiftInterestRepository) ListByShift(ctx context.Context, shiftID uint) ([]*models.ShiftInterest, error) {
	return r.ByFilter(ctx, models.ShiftInterestFilter{ShiftID: &shiftID}, "", 0, 0)
}

// FakeMessageRepository is a mutex-guarded in-memory MessageRepository.
// ApplyDeliveryUpdate re-implements the monotonicity and terminal-state
// guards the SQL version expresses in its WHERE clause.
type FakeMessageRepository struct {
	mu       sync.Mutex
	messages map[uint]*models.Message
	nextID   uint
}

var _ repository.MessageRepository = (*FakeMessageRepository)(nil)

func NewFakeMessageRepository() *FakeMessageRepository {
	return &FakeMessageRepository{messages: make(map[uint]*models.Message), nextID: 1}
}

func (r *FakeMessageRepository) ByID(ctx context.Context, id uint) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.messages[id], nil
}

func (r *FakeMessageRepository) Save(ctx context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == 0 {
		message.ID = r.nextID
		r.nextID++
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	message.UpdatedAt = time.Now().UTC()
	r.messages[message.ID] = message
	return nil
}

func (r *FakeMessageRepository) SaveBatch(ctx context.Context, messages []*models.Message) error {
	for _, m := range messages {
		if err := r.Save(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *FakeMessageRepository) ByFilter(ctx context.Context, filter models.MessageFilter, orderBy string, limit, offset int) ([]*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Message
	for _, m := range r.messages {
		if filter.ID != nil && m.ID != *filter.ID {
			continue
		}
		if filter.Direction != nil && m.Direction != *filter.Direction {
			continue
		}
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		if filter.MessageType != nil && m.MessageType != *filter.MessageType {
			continue
		}
		if filter.ShiftID != nil && (m.ShiftID == nil || *m.ShiftID != *filter.ShiftID) {
			continue
		}
		if filter.EmployeeID != nil && (m.EmployeeID == nil || *m.EmployeeID != *filter.EmployeeID) {
			continue
		}
		if filter.ProviderMessageID != nil && (m.ProviderMessageID == nil || *m.ProviderMessageID != *filter.ProviderMessageID) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

func (r *FakeMessageRepository) Count(ctx context.Context, filter models.MessageFilter) (int64, error) {
	all, err := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(all)), err
}

func (r *FakeMessageRepository) ByProviderMessageID(ctx context.Context, providerMessageID string) (*models.Message, error) {
	messages, err := r.ByFilter(ctx, models.MessageFilter{ProviderMessageID: &providerMessageID}, "", 1, 0)
	if err != nil || len(messages) == 0 {
		return nil, err
	}
	return messages[0], nil
}

func (r *FakeMessageRepository) MarkSent(ctx context.Context, messageID uint, providerName, providerMessageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[messageID]
	if !ok {
		return nil
	}
	queued := models.DeliveryStatusQueued
	m.Status = models.MessageStatusSent
	m.DeliveryStatus = &queued
	m.ProviderName = &providerName
	m.ProviderMessageID = &providerMessageID
	m.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *FakeMessageRepository) MarkFailed(ctx context.Context, messageID uint, errCode, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[messageID]
	if !ok {
		return nil
	}
	m.Status = models.MessageStatusFailed
	m.ErrorCode = &errCode
	m.ErrorMessage = &errMsg
	m.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *FakeMessageRepository) ApplyDeliveryUpdate(ctx context.Context, messageID uint, status models.DeliveryStatus, providerTime time.Time, errCode, errMsg *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[messageID]
	if !ok {
		return false, nil
	}
	if m.DeliveryUpdatedAt != nil && m.DeliveryUpdatedAt.After(providerTime) {
		return false, nil
	}
	if m.DeliveryStatus != nil && m.DeliveryStatus.IsTerminal() {
		return false, nil
	}
	m.DeliveryStatus = &status
	m.DeliveryUpdatedAt = &providerTime
	if errCode != nil {
		m.ErrorCode = errCode
	}
	if errMsg != nil {
		m.ErrorMessage = errMsg
	}
	m.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *FakeMessageRepository) ListByShift(ctx context.Context, shiftID uint) ([]*models.Message, error) {
	return r.ByFilter(ctx, models.MessageFilter{ShiftID: &shiftID}, "created_at DESC", 0, 0)
}

// FakeMessageTemplateRepository is an in-memory MessageTemplateRepository
type FakeMessageTemplateRepository struct {
	mu        sync.Mutex
	templates map[uint]*models.MessageTemplate
	nextID    uint
}

var _ repository.MessageTemplateRepository = (*FakeMessageTemplateRepository)(nil)

func NewFakeMessageTemplateRepository() *FakeMessageTemplateRepository {
	return &FakeMessageTemplateRepository{templates: make(map[uint]*models.MessageTemplate), nextID: 1}
}

func (r *FakeMessageTemplateRepository) ByID(ctx context.Context, id uint) (*models.MessageTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.templates[id], nil
}

func (r *FakeMessageTemplateRepository) Save(ctx context.Context, template *models.MessageTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if template.ID == 0 {
		template.ID = r.nextID
		r.nextID++
	}
	r.templates[template.ID] = template
	return nil
}

func (r *FakeMessageTemplateRepository) SaveBatch(ctx context.Context, templates []*models.MessageTemplate) error {
	for _, t := range templates {
		if err := r.Save(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (r *FakeMessageTemplateRepository) ByFilter(ctx context.Context, filter models.MessageTemplateFilter, orderBy string, limit, offset int) ([]*models.MessageTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.MessageTemplate
	for _, t := range r.templates {
		if filter.Name != nil && t.Name != *filter.Name {
			continue
		}
		if filter.MessageType != nil && t.MessageType != *filter.MessageType {
			continue
		}
		if filter.IsDefault != nil && (t.IsDefault == nil || *t.IsDefault != *filter.IsDefault) {
			continue
		}
		if filter.IsActive != nil && (t.IsActive == nil || *t.IsActive != *filter.IsActive) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

func (r *FakeMessageTemplateRepository) Count(ctx context.Context, filter models.MessageTemplateFilter) (int64, error) {
	all, err := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(all)), err
}

func (r *FakeMessageTemplateRepository) ByName(ctx context.Context, name string) (*models.MessageTemplate, error) {
	templates, err := r.ByFilter(ctx, models.MessageTemplateFilter{Name: &name}, "", 1, 0)
	if err != nil || len(templates) == 0 {
		return nil, err
	}
	return templates[0], nil
}

func (r *FakeMessageTemplateRepository) DefaultForType(ctx context.Context, messageType models.MessageType) (*models.MessageTemplate, error) {
	isDefault := true
	isActive := true
	templates, err := r.ByFilter(ctx, models.MessageTemplateFilter{
		MessageType: &messageType,
		IsDefault:   &isDefault,
		IsActive:    &isActive,
	}, "", 1, 0)
	if err != nil || len(templates) == 0 {
		return nil, err
	}
	return templates[0], nil
}

// FakeAuditLogRepository is an in-memory AuditLogRepository
type FakeAuditLogRepository struct {
	mu     sync.Mutex
	logs   []*models.AuditLog
	nextID uint
}

var _ repository.AuditLogRepository = (*FakeAuditLogRepository)(nil)

func NewFakeAuditLogRepository() *FakeAuditLogRepository {
	return &FakeAuditLogRepository{nextID: 1}
}

func (r *FakeAuditLogRepository) ByID(ctx context.Context, id uint) (*models.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.logs {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (r *FakeAuditLogRepository) Save(ctx context.Context, auditLog *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if auditLog.ID == 0 {
		auditLog.ID = r.nextID
		r.nextID++
	}
	if auditLog.CreatedAt.IsZero() {
		auditLog.CreatedAt = time.Now().UTC()
	}
	r.logs = append(r.logs, auditLog)
	return nil
}

func (r *FakeAuditLogRepository) SaveBatch(ctx context.Context, logs []*models.AuditLog) error {
	for _, l := range logs {
		if err := r.Save(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

func (r *FakeAuditLogRepository) ByFilter(ctx context.Context, filter models.AuditLogFilter, orderBy string, limit, offset int) ([]*models.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.AuditLog
	for _, l := range r.logs {
		if filter.Action != nil && l.Action != *filter.Action {
			continue
		}
		if filter.TargetType != nil && l.TargetType != *filter.TargetType {
			continue
		}
		if filter.TargetID != nil && (l.TargetID == nil || *l.TargetID != *filter.TargetID) {
			continue
		}
		if filter.Success != nil && (l.Success == nil || *l.Success != *filter.Success) {
			continue
		}
		out = append(out, l)
	}
	return paginate(out, limit, offset), nil
}

func (r *FakeAuditLogRepository) Count(ctx context.Context, filter models.AuditLogFilter) (int64, error) {
	all, err := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(all)), err
}

func (r *FakeAuditLogRepository) ListByTarget(ctx context.Context, targetType string, targetID uint, limit, offset int) ([]*models.AuditLog, error) {
	return r.ByFilter(ctx, models.AuditLogFilter{TargetType: &targetType, TargetID: &targetID}, "", limit, offset)
}

func (r *FakeAuditLogRepository) ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error) {
	return r.ByFilter(ctx, models.AuditLogFilter{Action: &action}, "", limit, offset)
}

// All returns every recorded entry, oldest first.
func (r *FakeAuditLogRepository) All() []*models.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.AuditLog, len(r.logs))
	copy(out, r.logs)
	return out
}

// FakeRoleRepository is an in-memory RoleRepository
type FakeRoleRepository struct {
	mu     sync.Mutex
	roles  map[uint]*models.Role
	nextID uint
}

var _ repository.RoleRepository = (*FakeRoleRepository)(nil)

func NewFakeRoleRepository() *FakeRoleRepository {
	return &FakeRoleRepository{roles: make(map[uint]*models.Role), nextID: 1}
}

func (r *FakeRoleRepository) ByID(ctx context.Context, id uint) (*models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.roles[id], nil
}

func (r *FakeRoleRepository) Save(ctx context.Context, role *models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if role.ID == 0 {
		role.ID = r.nextID
		r.nextID++
	}
	r.roles[role.ID] = role
	return nil
}

func (r *FakeRoleRepository) SaveBatch(ctx context.Context, roles []*models.Role) error {
	for _, role := range roles {
		if err := r.Save(ctx, role); err != nil {
			return err
		}
	}
	return nil
}

func (r *FakeRoleRepository) ByFilter(ctx context.Context, filter models.RoleFilter, orderBy string, limit, offset int) ([]*models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Role
	for _, role := range r.roles {
		if filter.ID != nil && role.ID != *filter.ID {
			continue
		}
		if filter.Name != nil && role.Name != *filter.Name {
			continue
		}
		if filter.IsSystem != nil && (role.IsSystem == nil || *role.IsSystem != *filter.IsSystem) {
			continue
		}
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

func (r *FakeRoleRepository) Count(ctx context.Context, filter models.RoleFilter) (int64, error) {
	all, err := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(all)), err
}

func (r *FakeRoleRepository) ByName(ctx context.Context, name string) (*models.Role, error) {
	roles, err := r.ByFilter(ctx, models.RoleFilter{Name: &name}, "", 1, 0)
	if err != nil || len(roles) == 0 {
		return nil, err
	}
	return roles[0], nil
}

// FakePositionRepository is an in-memory PositionRepository
type FakePositionRepository struct {
	mu        sync.Mutex
	positions map[uint]*models.Position
	nextID    uint
}

var _ repository.PositionRepository = (*FakePositionRepository)(nil)

func NewFakePositionRepository() *FakePositionRepository {
	return &FakePositionRepository{positions: make(map[uint]*models.Position), nextID: 1}
}

func (r *FakePositionRepository) ByID(ctx context.Context, id uint) (*models.Position, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.positions[id], nil
}

func (r *FakePositionRepository) Save(ctx context.Context, position *models.Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if position.ID == 0 {
		position.ID = r.nextID
		r.nextID++
	}
	r.positions[position.ID] = position
	return nil
}

func (r *FakePositionRepository) SaveBatch(ctx context.Context, positions []*models.Position) error {
	for _, p := range positions {
		if err := r.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *FakePositionRepository) ByFilter(ctx context.Context, filter models.PositionFilter, orderBy string, limit, offset int) ([]*models.Position, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Position
	for _, p := range r.positions {
		if filter.Name != nil && p.Name != *filter.Name {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

func (r *FakePositionRepository) Count(ctx context.Context, filter models.PositionFilter) (int64, error) {
	all, err := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(all)), err
}

func (r *FakePositionRepository) ByName(ctx context.Context, name string) (*models.Position, error) {
	positions, err := r.ByFilter(ctx, models.PositionFilter{Name: &name}, "", 1, 0)
	if err != nil || len(positions) == 0 {
		return nil, err
	}
	return positions[0], nil
}

// FakeAreaRepository is an in-memory AreaRepository
type FakeAreaRepository struct {
	mu     sync.Mutex
	areas  map[uint]*models.Area
	nextID uint
}

var _ repository.AreaRepository = (*FakeAreaRepository)(nil)

func NewFakeAreaRepository() *FakeAreaRepository {
	return &FakeAreaRepository{areas: make(map[uint]*models.Area), nextID: 1}
}

func (r *FakeAreaRepository) ByID(ctx context.Context, id uint) (*models.Area, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.areas[id], nil
}

func (r *FakeAreaRepository) Save(ctx context.Context, area *models.Area) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if area.ID == 0 {
		area.ID = r.nextID
		r.nextID++
	}
	r.areas[area.ID] = area
	return nil
}

func (r *FakeAreaRepository) SaveBatch(ctx context.Context, areas []*models.Area) error {
	for _, a := range areas {
		if err := r.Save(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (r *FakeAreaRepository) ByFilter(ctx context.Context, filter models.AreaFilter, orderBy string, limit, offset int) ([]*models.Area, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.Area
	for _, a := range r.areas {
		if filter.Name != nil && a.Name != *filter.Name {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

func (r *FakeAreaRepository) Count(ctx context.Context, filter models.AreaFilter) (int64, error) {
	all, err := r.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(all)), err
}

func (r *FakeAreaRepository) ByName(ctx context.Context, name string) (*models.Area, error) {
	areas, err := r.ByFilter(ctx, models.AreaFilter{Name: &name}, "", 1, 0)
	if err != nil || len(areas) == 0 {
		return nil, err
	}
	return areas[0], nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
