package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"

	appErrors "resumebuilder/internal/errors"
)

// StatusError is a non-2xx answer from an enhancement backend
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("AI gateway error: %d", e.StatusCode)
}

// statusOf extracts an HTTP status from the error types the providers return
func statusOf(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return genaiErr.Code
	}
	var genaiErrPtr *genai.APIError
	if errors.As(err, &genaiErrPtr) {
		return genaiErrPtr.Code
	}
	return 0
}

// classify maps a provider error onto a failure category
func classify(op Kind, err error) *Failure {
	failure := &Failure{Kind: FailureGeneric, Operation: op, Cause: err}

	switch statusOf(err) {
	case http.StatusTooManyRequests:
		failure.Kind = FailureRateLimited
		return failure
	case http.StatusPaymentRequired:
		failure.Kind = FailureQuotaExhausted
		return failure
	}

	switch appErrors.CodeOf(err) {
	case appErrors.ErrCodeAIDisabled:
		failure.Kind = FailureDisabled
	case appErrors.ErrCodeRateLimited:
		failure.Kind = FailureRateLimited
	case appErrors.ErrCodeQuotaExhausted:
		failure.Kind = FailureQuotaExhausted
	case appErrors.ErrCodeInvalidRequest:
		failure.Kind = FailureInvalidInput
	}

	if failure.Kind == FailureGeneric {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			failure.Detail = "enhancement service temporarily unavailable"
		case errors.Is(err, context.DeadlineExceeded):
			failure.Detail = "enhancement request timed out"
		}
	}
	return failure
}
