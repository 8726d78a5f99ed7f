package serverutils

// Envelope is the response shape of every endpoint:
// {status, message, data} on success, {status, message, errors} on
// failure.
type Envelope struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func SuccessResponse(message string, data interface{}) Envelope {
	return Envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string, errors map[string][]string) Envelope {
	return Envelope{
		Status:  "error",
		Message: message,
		Errors:  errors,
	}
}
