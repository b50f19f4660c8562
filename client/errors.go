package client

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/goliatone/go-errors"
)

// Text codes for the failure taxonomy. The console logs these; the
// operator only ever sees one generic message per operation.
const (
	TextCodeNoResponse   = "api_no_response"
	TextCodeBadRequest   = "api_bad_request"
	TextCodeUnauthorized = "api_unauthorized"
	TextCodeForbidden    = "api_forbidden"
	TextCodeNotFound     = "api_not_found"
	TextCodeConflict     = "api_conflict"
	TextCodeFailed       = "api_failed"
	TextCodeTransport    = "api_transport"
)

type apiErrorBody struct {
	Message string `json:"message"`
}

// noResponseError marks a request that never produced an HTTP response
func noResponseError(err error) error {
	return errors.Wrap(err, errors.CategoryExternal, "no server response").
		WithTextCode(TextCodeNoResponse)
}

func wrapTransport(err error, msg string) error {
	return errors.Wrap(err, errors.CategoryExternal, msg).
		WithTextCode(TextCodeTransport)
}

// statusError classifies a non-success HTTP status. The response body
// message, when parseable, is kept as metadata for the logs.
func statusError(resp *http.Response) error {
	message := "request failed"
	if bodyBytes, err := io.ReadAll(resp.Body); err == nil {
		body := apiErrorBody{}
		if err := json.Unmarshal(bodyBytes, &body); err == nil && body.Message != "" {
			message = body.Message
		}
	}

	var apiErr *errors.Error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		apiErr = errors.New(message, errors.CategoryBadInput).
			WithTextCode(TextCodeBadRequest).
			WithCode(errors.CodeBadRequest)
	case http.StatusUnauthorized:
		apiErr = errors.New(message, errors.CategoryAuth).
			WithTextCode(TextCodeUnauthorized).
			WithCode(errors.CodeUnauthorized)
	case http.StatusForbidden:
		apiErr = errors.New(message, errors.CategoryAuthz).
			WithTextCode(TextCodeForbidden).
			WithCode(errors.CodeForbidden)
	case http.StatusNotFound:
		apiErr = errors.New(message, errors.CategoryNotFound).
			WithTextCode(TextCodeNotFound).
			WithCode(errors.CodeNotFound)
	case http.StatusConflict:
		apiErr = errors.New(message, errors.CategoryConflict).
			WithTextCode(TextCodeConflict).
			WithCode(errors.CodeConflict)
	default:
		apiErr = errors.New(message, errors.CategoryExternal).
			WithTextCode(TextCodeFailed)
	}

	return apiErr.WithMetadata(map[string]any{
		"status": resp.StatusCode,
	})
}

// IsNotFound reports whether err is a 404 classification
func IsNotFound(err error) bool {
	var rich *errors.Error
	if !stderrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == TextCodeNotFound
}

// IsConflict reports whether err is a 409 classification
func IsConflict(err error) bool {
	var rich *errors.Error
	if !stderrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == TextCodeConflict
}

// IsUnauthorized reports whether err is a 401 classification
func IsUnauthorized(err error) bool {
	var rich *errors.Error
	if !stderrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == TextCodeUnauthorized
}
