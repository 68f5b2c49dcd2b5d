// internal/app/system/respond/respond.go

// Package respond builds the uniform JSON envelope every endpoint speaks:
//
//	success: {"success":true,"data":...}
//	list:    {"success":true,"data":{"items":[...],"pagination":{...}}}
//	error:   {"success":false,"error":{"message":...,"code":...}}
//
// Handlers return errors instead of writing error responses themselves;
// Wrap is the single point that translates domain errors into the error
// envelope and tags the log line with the operation verb and entity.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/app/system/paging"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// listData is the payload shape for paginated list endpoints.
type listData struct {
	Items      any               `json:"items"`
	Pagination paging.Pagination `json:"pagination"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

// Created writes a 201 success envelope.
func Created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: data})
}

// NoContent writes a 204 with an empty body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// List writes a 200 success envelope wrapping items plus pagination.
// A nil items slice is rendered as an empty JSON array, not null.
func List(w http.ResponseWriter, items any, p paging.Pagination) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: listData{Items: items, Pagination: p}})
}

// Err writes the error envelope for err using the closed taxonomy.
func Err(w http.ResponseWriter, err error) {
	kind := apierr.KindOf(err)
	writeJSON(w, apierr.HTTPStatus(kind), envelope{
		Success: false,
		Error:   &errorBody{Message: apierr.MessageOf(err), Code: string(kind)},
	})
}

// HandlerFunc is an HTTP handler that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Wrap adapts fn into an http.HandlerFunc. When fn returns an error, Wrap
// logs it with the operation verb and entity name and writes the error
// envelope. Internal errors are logged in full but reach the client as a
// sanitized message with a stable code.
func Wrap(log *zap.Logger, verb, entity string, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		kind := apierr.KindOf(err)
		fields := []zap.Field{
			zap.String("op", verb),
			zap.String("entity", entity),
			zap.String("kind", string(kind)),
			zap.Error(err),
		}
		switch kind {
		case apierr.KindInternal, apierr.KindUnavailable:
			log.Error("request failed", fields...)
		default:
			log.Warn("request rejected", fields...)
		}
		Err(w, err)
	}
}
