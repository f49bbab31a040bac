// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeMenteeProfileInvalid  ErrorCode = "MENTEE_PROFILE_INVALID"
	ErrCodeMenteeProfileNotFound ErrorCode = "MENTEE_PROFILE_NOT_FOUND"
	ErrCodeMatchRequestInvalid   ErrorCode = "MATCH_REQUEST_INVALID"
	ErrCodeMatchingFailed        ErrorCode = "MATCHING_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"

	ErrCodeMentorSearchFailed  ErrorCode = "MENTOR_SEARCH_FAILED"
	ErrCodeMentorSearchTimeout ErrorCode = "MENTOR_SEARCH_TIMEOUT"
	ErrCodeMentorIndexNotFound ErrorCode = "MENTOR_INDEX_NOT_FOUND"

	ErrCodeDigestSendFailed ErrorCode = "DIGEST_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewMenteeProfileInvalidError creates a non-retryable profile validation error.
func NewMenteeProfileInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMenteeProfileInvalid,
		Message:   "Mentee profile failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMenteeProfileNotFoundError creates a non-retryable missing profile error.
func NewMenteeProfileNotFoundError(menteeID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMenteeProfileNotFound,
		Message:   "Mentee profile not found",
		Details:   fmt.Sprintf("menteeId: %s", menteeID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMatchRequestInvalidError creates a non-retryable request validation error.
func NewMatchRequestInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMatchRequestInvalid,
		Message:   "Match request failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMatchingFailedError creates a retryable engine failure error.
func NewMatchingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMatchingFailed,
		Message:   "Mentor matching failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(query string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("query: %s, error: %s", query, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(query string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("query: %s", query),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMentorSearchFailedError creates a retryable search error.
func NewMentorSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMentorSearchFailed,
		Message:   "Mentor pool search error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMentorSearchTimeoutError creates a retryable search timeout error.
func NewMentorSearchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeMentorSearchTimeout,
		Message:   "Mentor pool search timeout",
		Details:   "search call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMentorIndexNotFoundError creates a non-retryable index error.
func NewMentorIndexNotFoundError(indexName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMentorIndexNotFound,
		Message:   "Mentor search index not found",
		Details:   fmt.Sprintf("indexName: %s", indexName),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDigestSendFailedError creates a retryable notification send error.
func NewDigestSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDigestSendFailed,
		Message:   "Match digest delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// retryCounts lists retry budgets for retryable codes; anything absent gets 0.
var retryCounts = map[ErrorCode]int{
	ErrCodeMatchingFailed:           2,
	ErrCodeDatabaseConnectionFailed: 3,
	ErrCodeQueryExecutionFailed:     3,
	ErrCodeQueryTimeout:             2,
	ErrCodeMentorSearchFailed:       3,
	ErrCodeMentorSearchTimeout:      2,
	ErrCodeDigestSendFailed:         3,
}

// GetRetryCount returns the retry budget for an error code.
func GetRetryCount(code ErrorCode) int {
	return retryCounts[code]
}

// GetErrorCategory buckets an error code for logging and metrics.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeMenteeProfileInvalid, ErrCodeMenteeProfileNotFound, ErrCodeMatchRequestInvalid:
		return "validation"
	case ErrCodeDatabaseConnectionFailed, ErrCodeQueryExecutionFailed, ErrCodeQueryTimeout:
		return "database"
	case ErrCodeMentorSearchFailed, ErrCodeMentorSearchTimeout, ErrCodeMentorIndexNotFound:
		return "search"
	case ErrCodeDigestSendFailed:
		return "notification"
	case ErrCodeMatchingFailed:
		return "matching"
	default:
		return "internal"
	}
}

// ConvertToBPMNError maps a StandardError onto the BPMN error thrown to the
// workflow. Internal and BPMN codes are identical by convention.
func ConvertToBPMNError(err *StandardError) *BPMNError {
	return &BPMNError{
		Code:      string(err.Code),
		Message:   err.Message,
		Details:   err.Details,
		Retryable: err.Retryable,
		Retries:   GetRetryCount(err.Code),
		ErrorVariables: map[string]interface{}{
			"errorCategory": GetErrorCategory(err.Code),
		},
	}
}
