package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// WHY HELPERS?
// Without helpers, every handler repeats the same boilerplate:
//   w.Header().Set("Content-Type", "application/json")
//   w.WriteHeader(statusCode)
//   json.NewEncoder(w).Encode(data)
//
// With helpers, handlers are cleaner and more consistent:
//   writeJSON(w, http.StatusOK, Envelope{Success: true, Data: profile})
//   writeError(w, err)
//
// CONSISTENT RESPONSE FORMAT:
// Every response from the API, success or failure, is an Envelope:
//   {"success": true, "data": {...}}
//   {"success": false, "message": "Validation failed", "errors": [...]}
//
// The frontend always checks `success` first and knows which optional
// fields may follow.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sakif/portfolio-api/internal/apperror"
	"github.com/sakif/portfolio-api/internal/model"
)

// Envelope is the JSON shape of every API response.
type Envelope struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message,omitempty"`
	Data       any                  `json:"data,omitempty"`
	Errors     []apperror.Violation `json:"errors,omitempty"`
	Pagination *model.Pagination    `json:"pagination,omitempty"`
}

// Client-facing messages. Internal error text never reaches a response.
const (
	msgValidationFailed = "Validation failed"
	msgInvalidJSON      = "Invalid JSON body"
	msgBodyTooLarge     = "Request body too large"
	msgRouteNotFound    = "Route not found"
	msgTooManyRequests  = "Too many requests from this IP, please try again later."
	msgDatabaseError    = "Database error"
	msgCorruptProfile   = "Error processing profile data"
	msgInternalError    = "Internal server error"
)

var (
	errInvalidJSON  = errors.New("invalid JSON body")
	errBodyTooLarge = errors.New("request body too large")
)

// writeJSON sends a JSON response with the given status code.
//
// HEADER ORDER MATTERS:
// You MUST set headers and status code BEFORE writing the body.
// Once you call w.Write() (which Encode does internally), the headers are sent.
// Any header changes after that are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent, so all we can do is log it.
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: status < 400, Message: message})
}

// writeError maps a domain error to a status code and a generic message.
//
// ERROR MAPPING:
//
//	*apperror.ValidationError → 400 "Validation failed" + errors[]
//	errInvalidJSON           → 400 "Invalid JSON body"
//	apperror.ErrNotFound     → 404 "<Resource> not found"
//	errBodyTooLarge          → 413
//	apperror.ErrDataCorruption → 500 "Error processing profile data"
//	apperror.ErrStore        → 500 "Database error"
//	anything else            → 500 "Internal server error"
//
// The service layer already logged store and corruption failures with
// their cause; only unexpected errors are logged here.
func writeError(w http.ResponseWriter, err error) {
	var verr *apperror.ValidationError
	var appErr *apperror.AppError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, Envelope{
			Success: false,
			Message: msgValidationFailed,
			Errors:  verr.Violations,
		})
	case errors.Is(err, errInvalidJSON):
		writeMessage(w, http.StatusBadRequest, msgInvalidJSON)
	case errors.Is(err, errBodyTooLarge):
		writeMessage(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
	case errors.Is(err, apperror.ErrRouteNotFound):
		writeMessage(w, http.StatusNotFound, msgRouteNotFound)
	case errors.Is(err, apperror.ErrNotFound) && errors.As(err, &appErr):
		writeMessage(w, http.StatusNotFound, capitalize(appErr.Message))
	case errors.Is(err, apperror.ErrDataCorruption):
		writeMessage(w, http.StatusInternalServerError, msgCorruptProfile)
	case errors.Is(err, apperror.ErrStore):
		writeMessage(w, http.StatusInternalServerError, msgDatabaseError)
	default:
		slog.Error("unhandled error", slog.String("error", err.Error()))
		writeMessage(w, http.StatusInternalServerError, msgInternalError)
	}
}

// decodeJSON reads the request body into dst.
//
// An empty body decodes as {}, so a bodiless POST reaches validation and
// reports the missing required fields. A value of the wrong JSON type (e.g.
// a number where name expects a string) is a validation violation on that
// field rather than a malformed body. Skills never fail here: model.Skills
// records the mismatch and validation reports it with the other fields.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var maxErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &maxErr):
		return errBodyTooLarge
	case errors.As(err, &typeErr) && typeErr.Field != "":
		field, _, _ := strings.Cut(typeErr.Field, ".")
		return apperror.ValidationFailed(field, typeMessage(field, typeErr))
	default:
		return fmt.Errorf("%w: %v", errInvalidJSON, err)
	}
}

// typeMessage describes a JSON type mismatch in client terms, e.g.
// "Name must be a string".
func typeMessage(field string, typeErr *json.UnmarshalTypeError) string {
	want := "a valid value"
	if typeErr.Type != nil {
		switch typeErr.Type.Kind() {
		case reflect.String:
			want = "a string"
		case reflect.Slice, reflect.Array:
			want = "an array"
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			want = "a number"
		case reflect.Bool:
			want = "true or false"
		case reflect.Struct, reflect.Map:
			want = "an object"
		}
	}
	return fmt.Sprintf("%s must be %s", capitalize(field), want)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// pageRequest reads ?page and ?limit from the query string.
func pageRequest(r *http.Request, maxPageSize int) model.PageRequest {
	q := r.URL.Query()
	return model.ParsePageRequest(q.Get("page"), q.Get("limit"), maxPageSize)
}

// NotFound answers any unmatched path or method.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, apperror.ErrRouteNotFound)
}

// InternalError is the Recoverer fallback for panics.
func InternalError(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusInternalServerError, msgInternalError)
}

// TooManyRequests is the rate limiter's refusal response.
func TooManyRequests(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, http.StatusTooManyRequests, msgTooManyRequests)
}
