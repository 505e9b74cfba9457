package models

// APIResponse is the uniform success envelope returned by every handler.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// NewAPIResponse builds a success envelope. Success is derived from the status
// code so callers cannot produce a contradictory pair.
func NewAPIResponse(statusCode int, data interface{}, message string) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

// APIError is the uniform error envelope. Errors carries field-level details
// when present; it is always serialized, possibly empty.
type APIError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// NewAPIError builds an error envelope with Success forced to false.
func NewAPIError(statusCode int, message string, details ...string) APIError {
	if details == nil {
		details = []string{}
	}
	return APIError{
		StatusCode: statusCode,
		Message:    message,
		Success:    false,
		Errors:     details,
	}
}
