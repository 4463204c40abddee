package rpc

import (
	"errors"
	"fmt"

	"github.com/attnlabs/focusd/internal/domain/category"
	"github.com/attnlabs/focusd/internal/domain/report"
	"github.com/attnlabs/focusd/internal/transport"
)

// APIError represents an RPC error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	rpcCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// RPCCode maps the error to a JSON-RPC error code.
func (e *APIError) RPCCode() int {
	if e.rpcCode != 0 {
		return e.rpcCode
	}
	return transport.ErrInternal
}

func invalidParams(format string, args ...any) *APIError {
	return &APIError{Code: "INVALID_PARAMS", Message: fmt.Sprintf(format, args...), rpcCode: transport.ErrInvalidParams}
}

func unknownAction(action string) *APIError {
	return &APIError{Code: "UNKNOWN_ACTION", Message: fmt.Sprintf("unknown action %q", action), rpcCode: transport.ErrMethodNotFound}
}

// MapError converts domain errors to API errors. Unmapped errors pass through
// and surface as internal errors.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, category.ErrUnknownCategory):
		return &APIError{Code: "INVALID_CATEGORY", Message: err.Error(), rpcCode: transport.ErrInvalidParams}
	case errors.Is(err, category.ErrEmptyDomain):
		return &APIError{Code: "EMPTY_DOMAIN", Message: err.Error(), rpcCode: transport.ErrInvalidParams}
	case errors.Is(err, report.ErrInvalidArchive):
		return &APIError{Code: "INVALID_ARCHIVE", Message: err.Error(), rpcCode: transport.ErrInvalidParams}
	default:
		return err
	}
}
