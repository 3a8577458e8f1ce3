// Package utils provides utility functions for the application.
package utils

// Context keys for request-scoped values carried from the HTTP layer into
// business flows.
const (
	RequestIDKey  = "X-Request-ID"
	UserAgentKey  = "User-Agent"
	IPAddressKey  = "IP-Address"
	EndpointKey   = "Endpoint"
	TimeoutKey    = "Timeout"
	CancelFuncKey = "CancelFunc"
)
