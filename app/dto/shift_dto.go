package dto

// CreateShiftRequest carries a supervisor's new open shift
type CreateShiftRequest struct {
	PositionID     uint    `json:"position_id" validate:"required"`
	AreaID         uint    `json:"area_id" validate:"required"`
	Location       string  `json:"location" validate:"required,max=255"`
	ShiftDate      string  `json:"shift_date" validate:"required,datetime=2006-01-02"`
	StartTime      string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime        string  `json:"end_time" validate:"required,datetime=15:04"`
	Requirements   *string `json:"requirements,omitempty" validate:"omitempty,max=2000"`
	BonusAmount    *int64  `json:"bonus_amount,omitempty" validate:"omitempty,min=0"`
	NotifyAllAreas bool    `json:"notify_all_areas"`
	Notify         bool    `json:"notify"`
	TemplateName   *string `json:"template_name,omitempty" validate:"omitempty,max=100"`
}

// ShiftDTO is the supervisor-facing shift representation
type ShiftDTO struct {
	ID                uint    `json:"id"`
	UUID              string  `json:"uuid"`
	Position          string  `json:"position"`
	Area              string  `json:"area"`
	Location          string  `json:"location"`
	ShiftDate         string  `json:"shift_date"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	Requirements      *string `json:"requirements,omitempty"`
	PostedBy          string  `json:"posted_by"`
	Status            string  `json:"status"`
	AssignedEmployee  *string `json:"assigned_employee,omitempty"`
	Code              string  `json:"code"`
	BonusAmount       *int64  `json:"bonus_amount,omitempty"`
	NotifyAllAreas    bool    `json:"notify_all_areas"`
	LastNotifiedAt    *string `json:"last_notified_at,omitempty"`
	NotificationCount int     `json:"notification_count"`
	CreatedAt         string  `json:"created_at"`
}

// PublicShiftDTO is the anonymous shift summary served by code lookup.
// It intentionally omits poster identity and internal ids.
type PublicShiftDTO struct {
	Code        string `json:"code"`
	Position    string `json:"position"`
	Area        string `json:"area"`
	Location    string `json:"location"`
	ShiftDate   string `json:"shift_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	BonusAmount *int64 `json:"bonus_amount,omitempty"`
	Status      string `json:"status"`
}

// AssignShiftRequest carries a supervisor's assignment decision
type AssignShiftRequest struct {
	EmployeeID uint `json:"employee_id" validate:"required"`
	Notify     bool `json:"notify"`
}

// NotifyShiftRequest triggers (re-)notification of a shift
type NotifyShiftRequest struct {
	TemplateName      *string `json:"template_name,omitempty" validate:"omitempty,max=100"`
	TargetEmployeeIDs []uint  `json:"target_employee_ids,omitempty" validate:"omitempty,min=1,dive,required"`
	Reminder          bool    `json:"reminder"`
}

// BulkShiftRequest names the shifts a bulk operation applies to
type BulkShiftRequest struct {
	ShiftIDs []uint `json:"shift_ids" validate:"required,min=1,max=100,dive,required"`
}

// BulkShiftResult reports the per-shift outcome of a bulk operation
type BulkShiftResult struct {
	ShiftID    uint    `json:"shift_id"`
	Success    bool    `json:"success"`
	NewShiftID *uint   `json:"new_shift_id,omitempty"` // set by repost
	ErrorCode  *string `json:"error_code,omitempty"`
	Error      *string `json:"error,omitempty"`
}

// NotifyShiftResponse reports a dispatch batch
type NotifyShiftResponse struct {
	ShiftID        uint `json:"shift_id"`
	RecipientCount int  `json:"recipient_count"`
	SentCount      int  `json:"sent_count"`
	FailedCount    int  `json:"failed_count"`
}
