package domain

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors for the domain layer.
var (
	ErrBeforeEpoch       = fmt.Errorf("modification time is before the unix epoch")
	ErrConfigLoad        = fmt.Errorf("failed to load configuration")
	ErrRPCMethodNotFound = fmt.Errorf("rpc method not found")
	ErrRPCInvalidPayload = fmt.Errorf("rpc payload invalid")
	ErrGatewayAuthFailed = fmt.Errorf("gateway authentication failed")
	ErrHostNotReady      = fmt.Errorf("host runtime not ready")
)

// DomainError wraps a sentinel error with context.
type DomainError struct {
	Op     string // operation name (e.g., "Facade.ModifiedTime")
	Err    error  // underlying sentinel or wrapped error
	Detail string // human-readable detail
}

func (e *DomainError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewDomainError creates a new DomainError.
func NewDomainError(op string, err error, detail string) *DomainError {
	return &DomainError{Op: op, Err: err, Detail: detail}
}

// WrapOp adds operation context to an error using fmt.Errorf wrapping.
// Returns nil if err is nil, enabling idiomatic use: return domain.WrapOp("op", err)
func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ErrorCode is a machine-parseable error category for metrics and logs.
// The UI never sees it; commands surface only the message text.
type ErrorCode string

const (
	CodeOK               ErrorCode = "OK"
	CodeUnknown          ErrorCode = "UNKNOWN"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeExists           ErrorCode = "EXISTS"
	CodePermissionDenied ErrorCode = "PERMISSION_DENIED"
	CodeBeforeEpoch      ErrorCode = "BEFORE_EPOCH"
	CodeConfigLoad       ErrorCode = "CONFIG_LOAD"
	CodeRPCMethodNotFnd  ErrorCode = "RPC_METHOD_NOT_FOUND"
	CodeRPCInvalid       ErrorCode = "RPC_INVALID_PAYLOAD"
	CodeGatewayAuth      ErrorCode = "GATEWAY_AUTH"
	CodeHostNotReady     ErrorCode = "HOST_NOT_READY"
)

// errorCodeMap maps sentinel errors to their machine-parseable codes.
// fs sentinels cover the *fs.PathError values returned by the os package.
var errorCodeMap = map[error]ErrorCode{
	fs.ErrNotExist:   CodeNotFound,
	fs.ErrExist:      CodeExists,
	fs.ErrPermission: CodePermissionDenied,

	ErrBeforeEpoch:       CodeBeforeEpoch,
	ErrConfigLoad:        CodeConfigLoad,
	ErrRPCMethodNotFound: CodeRPCMethodNotFnd,
	ErrRPCInvalidPayload: CodeRPCInvalid,
	ErrGatewayAuthFailed: CodeGatewayAuth,
	ErrHostNotReady:      CodeHostNotReady,
}

// ErrorCodeOf returns the error code for err. A nil error maps to CodeOK.
// Returns CodeUnknown if no matching sentinel is found in the chain.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}

	// Fast path: direct sentinel lookup.
	if code, ok := errorCodeMap[err]; ok {
		return code
	}

	for sentinel, code := range errorCodeMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return CodeUnknown
}

// Code returns the ErrorCode for this DomainError's underlying error.
func (e *DomainError) Code() ErrorCode {
	return ErrorCodeOf(e.Err)
}
