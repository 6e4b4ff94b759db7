package web

import (
	"reflect"
	"time"
)

const (
	OperationSuccess = "Success"
	OperationFailure = "Failure"

	timestampLayout = "02/01/2006 15:04:05"
)

// Success is the envelope of every successful response.
type Success struct {
	OperationType string      `json:"operationType"`
	Message       string      `json:"message"`
	Code          string      `json:"code"`
	Data          interface{} `json:"data"`
	Size          int         `json:"size"`
	TraceID       string      `json:"traceId"`
	Timestamp     string      `json:"timestamp"`
}

// Failure is the envelope of every failed response.
type Failure struct {
	OperationType string                 `json:"operationType"`
	Message       string                 `json:"message"`
	Code          string                 `json:"code"`
	Domain        string                 `json:"domain"`
	Details       map[string]interface{} `json:"details"`
	TraceID       string                 `json:"traceId"`
	Timestamp     string                 `json:"timestamp"`
}

// NewSuccess wraps data. Size is the length of a list payload and 0 otherwise.
func NewSuccess(data interface{}, traceID string) Success {
	return Success{
		OperationType: OperationSuccess,
		Message:       "success",
		Code:          "OK",
		Data:          data,
		Size:          sizeOf(data),
		TraceID:       traceID,
		Timestamp:     time.Now().Format(timestampLayout),
	}
}

func NewFailure(status int, message, domain string, details map[string]interface{}, traceID string) Failure {
	if details == nil {
		details = map[string]interface{}{}
	}
	return Failure{
		OperationType: OperationFailure,
		Message:       message,
		Code:          codeOf(status),
		Domain:        domain,
		Details:       details,
		TraceID:       traceID,
		Timestamp:     time.Now().Format(timestampLayout),
	}
}

func sizeOf(data interface{}) int {
	if data == nil {
		return 0
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return v.Len()
	}
	return 0
}
