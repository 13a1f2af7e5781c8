package tts

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Sentinel error kinds surfaced to callers. The pipeline does not retry
// any of these; a manual regenerate is the caller's recovery path.
var (
	// ErrEmptySynthesis means the provider answered but carried no
	// audio, or a zero-length buffer.
	ErrEmptySynthesis = errors.New("synthesis returned no audio")
	// ErrAuthentication covers credential and permission failures.
	ErrAuthentication = errors.New("authentication with speech provider failed")
	// ErrQuotaExceeded covers rate limits and exhausted quotas.
	ErrQuotaExceeded = errors.New("speech provider quota exceeded")
	// ErrInvalidParameters means the provider rejected the request
	// shape (voice name, sample rate, text).
	ErrInvalidParameters = errors.New("invalid synthesis parameters")
)

// SynthesisError wraps any provider failure not covered by a sentinel
// kind, keeping the provider name and original message.
type SynthesisError struct {
	Provider string
	Err      error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("%s synthesis failed: %v", e.Provider, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// classifyGRPCError maps a gRPC status from the Google Cloud client onto
// the domain error kinds.
func classifyGRPCError(provider string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return &SynthesisError{Provider: provider, Err: err}
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrAuthentication, st.Message())
	case codes.ResourceExhausted:
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidParameters, st.Message())
	default:
		return &SynthesisError{Provider: provider, Err: err}
	}
}

// classifyAWSError maps smithy API error codes from the Polly client
// onto the domain error kinds.
func classifyAWSError(provider string, err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return &SynthesisError{Provider: provider, Err: err}
	}
	switch apiErr.ErrorCode() {
	case "AccessDeniedException", "UnrecognizedClientException", "IncompleteSignature", "InvalidClientTokenId":
		return fmt.Errorf("%w: %s", ErrAuthentication, apiErr.ErrorMessage())
	case "ThrottlingException", "LimitExceededException":
		return fmt.Errorf("%w: %s", ErrQuotaExceeded, apiErr.ErrorMessage())
	case "ValidationException", "InvalidSampleRateException", "TextLengthExceededException", "InvalidSsmlException":
		return fmt.Errorf("%w: %s", ErrInvalidParameters, apiErr.ErrorMessage())
	default:
		return &SynthesisError{Provider: provider, Err: err}
	}
}

// classifyHTTPStatus maps an HTTP status code from the Gemini endpoint
// onto the domain error kinds.
func classifyHTTPStatus(provider string, statusCode int, body string) error {
	switch statusCode {
	case 401, 403:
		return fmt.Errorf("%w: HTTP %d: %s", ErrAuthentication, statusCode, body)
	case 429:
		return fmt.Errorf("%w: HTTP %d: %s", ErrQuotaExceeded, statusCode, body)
	case 400:
		return fmt.Errorf("%w: HTTP %d: %s", ErrInvalidParameters, statusCode, body)
	default:
		return &SynthesisError{
			Provider: provider,
			Err:      fmt.Errorf("HTTP %d: %s", statusCode, body),
		}
	}
}
