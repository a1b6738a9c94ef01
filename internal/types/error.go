package types

import "fmt"

// CustomError is an HTTP-visible error with a status code and a type tag
// for the JSON error envelope.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NewCustomError builds a CustomError.
func NewCustomError(code int, message, errType string) *CustomError {
	return &CustomError{Code: code, Message: message, Type: errType}
}
