package dto

// DeliveryCallbackRequest is the provider's asynchronous status callback
type DeliveryCallbackRequest struct {
	ProviderMessageID string  `json:"provider_message_id" validate:"required,max=64"`
	Status            string  `json:"status" validate:"required,oneof=queued sent delivered undelivered failed canceled"`
	Timestamp         string  `json:"timestamp" validate:"required"` // RFC3339
	ErrorCode         *string `json:"error_code,omitempty" validate:"omitempty,max=40"`
	ErrorMessage      *string `json:"error_message,omitempty"`
}

// InboundMessageRequest is an inbound SMS delivered by the provider webhook
type InboundMessageRequest struct {
	ProviderMessageID string `json:"provider_message_id" validate:"required,max=64"`
	From              string `json:"from" validate:"required,min=8,max=20"`
	To                string `json:"to" validate:"required,min=8,max=20"`
	Body              string `json:"body" validate:"required"`
}

// MessageDTO is the supervisor view of a message record
type MessageDTO struct {
	ID             uint    `json:"id"`
	UUID           string  `json:"uuid"`
	Direction      string  `json:"direction"`
	ToPhone        string  `json:"to_phone"` // masked
	Body           string  `json:"body"`
	SegmentCount   int     `json:"segment_count"`
	Status         string  `json:"status"`
	DeliveryStatus *string `json:"delivery_status,omitempty"`
	MessageType    string  `json:"message_type"`
	ShiftID        *uint   `json:"shift_id,omitempty"`
	ErrorCode      *string `json:"error_code,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
