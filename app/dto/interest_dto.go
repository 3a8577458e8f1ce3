package dto

// ExpressInterestRequest is the public interest submission
type ExpressInterestRequest struct {
	Phone string `json:"phone" validate:"required,min=8,max=20"`
}

// ExpressInterestResponse acknowledges a recorded (or repeated) interest
type ExpressInterestResponse struct {
	AlreadyInterested bool   `json:"already_interested"`
	ShiftCode         string `json:"shift_code"`
}

// InterestDTO is the supervisor view of one recorded interest
type InterestDTO struct {
	EmployeeID   uint   `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Position     string `json:"position"`
	Phone        string `json:"phone"` // masked
	CreatedAt    string `json:"created_at"`
}
