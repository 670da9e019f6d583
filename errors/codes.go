package errors

// ErrorCode identifies an application error category. Codes are stable and
// returned to clients in error responses, so renumbering is a breaking change.
type ErrorCode int32

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS
	ErrorCode_PERMISSION_DENIED
	ErrorCode_UNAUTHENTICATED
	ErrorCode_FORBIDDEN
	ErrorCode_INVALID_PAYLOAD
	ErrorCode_HTTP_OK

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN
	ErrorCode_AUTH_TOKEN_EXPIRED
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN
	ErrorCode_AUTH_OAUTH_FAILED
	ErrorCode_AUTH_STATE_MISMATCH

	// Conflict detection and resolution workflow
	ErrorCode_INSUFFICIENT_INPUT
	ErrorCode_UNKNOWN_FLAG
	ErrorCode_INVALID_OPTION
	ErrorCode_INCOMPLETE_RESOLUTION
	ErrorCode_MALFORMED_DETECTOR_OUTPUT
	ErrorCode_DETECTOR_UNAVAILABLE
	ErrorCode_CONSOLIDATION_FAILED
	ErrorCode_SESSION_CLOSED

	// Document assembly
	ErrorCode_UNSUPPORTED_DOCUMENT_TYPE
	ErrorCode_NOTHING_TO_ASSEMBLE

	// Summarization
	ErrorCode_SUMMARY_FAILED
	ErrorCode_TRANSCRIPT_MISSING

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED

	// Database
	ErrorCode_DB_QUERY_FAILED
	ErrorCode_DB_TRANSACTION_FAILED
)

var codeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                        "UNKNOWN",
	ErrorCode_INTERNAL:                       "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:               "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                      "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:                 "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:              "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:                "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                      "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:                "INVALID_PAYLOAD",
	ErrorCode_HTTP_OK:                        "OK",
	ErrorCode_AUTH_INVALID_TOKEN:             "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:             "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN:     "AUTH_INVALID_REFRESH_TOKEN",
	ErrorCode_AUTH_OAUTH_FAILED:              "AUTH_OAUTH_FAILED",
	ErrorCode_AUTH_STATE_MISMATCH:            "AUTH_STATE_MISMATCH",
	ErrorCode_INSUFFICIENT_INPUT:             "INSUFFICIENT_INPUT",
	ErrorCode_UNKNOWN_FLAG:                   "UNKNOWN_FLAG",
	ErrorCode_INVALID_OPTION:                 "INVALID_OPTION",
	ErrorCode_INCOMPLETE_RESOLUTION:          "INCOMPLETE_RESOLUTION",
	ErrorCode_MALFORMED_DETECTOR_OUTPUT:      "MALFORMED_DETECTOR_OUTPUT",
	ErrorCode_DETECTOR_UNAVAILABLE:           "DETECTOR_UNAVAILABLE",
	ErrorCode_CONSOLIDATION_FAILED:           "CONSOLIDATION_FAILED",
	ErrorCode_SESSION_CLOSED:                 "SESSION_CLOSED",
	ErrorCode_UNSUPPORTED_DOCUMENT_TYPE:      "UNSUPPORTED_DOCUMENT_TYPE",
	ErrorCode_NOTHING_TO_ASSEMBLE:            "NOTHING_TO_ASSEMBLE",
	ErrorCode_SUMMARY_FAILED:                 "SUMMARY_FAILED",
	ErrorCode_TRANSCRIPT_MISSING:             "TRANSCRIPT_MISSING",
	ErrorCode_INTEGRATION_STORAGE_FAILED:     "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_DB_QUERY_FAILED:                "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:          "DB_TRANSACTION_FAILED",
}

// String returns the stable name of the error code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
