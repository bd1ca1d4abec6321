package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pitosalas/blogbridge-sub012/internal/domain/model"
	"github.com/pitosalas/blogbridge-sub012/internal/domain/query"
	"github.com/pitosalas/blogbridge-sub012/pkg/circuitbreaker"
)

const (
	apiVersion = "v1"

	contentTypeHeader = "Content-Type"
	applicationJSON   = "application/json"

	codeNotFound         = "NOT_FOUND"
	codeInvalidID        = "INVALID_ID"
	codeInvalidJSON      = "INVALID_JSON"
	codeInvalidPage      = "INVALID_PAGE"
	codeInvalidQuery     = "INVALID_QUERY"
	codeMalformedQuery   = "MALFORMED_QUERY"
	codeValidationFailed = "VALIDATION_FAILED"
	codeUnavailable      = "SERVICE_UNAVAILABLE"
	codeInternalError    = "INTERNAL_ERROR"

	msgSmartFeedNotFound  = "smart feed not found"
	msgArticleNotFound    = "article not found"
	msgInvalidID          = "invalid identifier"
	msgInvalidRequestBody = "invalid request body"
	msgUnavailable        = "a backing store is temporarily unavailable"
)

type (
	// responseMeta stays free of per-request values so identical resources
	// hash to the same ETag. The request ID travels in X-Request-Id.
	responseMeta struct {
		APIVersion string `json:"apiVersion"`
	}

	envelopedResponse struct {
		Data       any               `json:"data"`
		Meta       responseMeta      `json:"meta"`
		Pagination *model.Pagination `json:"pagination,omitempty"`
	}

	// ErrorResponse is the body of every 4xx and 5xx answer. Index is the
	// position of the failing criteria for query errors.
	ErrorResponse struct {
		Code      string                  `json:"code"`
		Message   string                  `json:"message"`
		Index     *int                    `json:"index,omitempty"`
		Fields    []model.ValidationError `json:"fields,omitempty"`
		Timestamp time.Time               `json:"timestamp"`
	}
)

func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set(contentTypeHeader, applicationJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeEnveloped(w http.ResponseWriter, status int, data any, pagination *model.Pagination) {
	writeJSONResponse(w, status, envelopedResponse{
		Data:       data,
		Meta:       responseMeta{APIVersion: apiVersion},
		Pagination: pagination,
	})
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSONResponse(w, status, ErrorResponse{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// writeServiceError maps a use case error onto a status code.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		criteriaErr   *query.CriteriaError
		validationErr *model.ValidationErrors
	)

	switch {
	case errors.As(err, &criteriaErr):
		index := criteriaErr.Index

		writeJSONResponse(w, http.StatusUnprocessableEntity, ErrorResponse{
			Code:      codeInvalidQuery,
			Message:   criteriaErr.Err.Error(),
			Index:     &index,
			Timestamp: time.Now().UTC(),
		})
	case errors.Is(err, query.ErrMalformedQuery):
		writeErrorResponse(w, http.StatusUnprocessableEntity, codeMalformedQuery, err.Error())
	case errors.As(err, &validationErr):
		writeJSONResponse(w, http.StatusUnprocessableEntity, ErrorResponse{
			Code:      codeValidationFailed,
			Message:   validationErr.Error(),
			Fields:    validationErr.Errors,
			Timestamp: time.Now().UTC(),
		})
	case errors.Is(err, model.ErrSmartFeedNotFound):
		writeErrorResponse(w, http.StatusNotFound, codeNotFound, msgSmartFeedNotFound)
	case errors.Is(err, model.ErrArticleNotFound):
		writeErrorResponse(w, http.StatusNotFound, codeNotFound, msgArticleNotFound)
	case errors.Is(err, circuitbreaker.ErrCircuitOpen),
		errors.Is(err, circuitbreaker.ErrTooManyRequests),
		errors.Is(err, model.ErrStoreUnavailable),
		errors.Is(err, model.ErrDatabaseConnection),
		errors.Is(err, context.DeadlineExceeded):
		writeErrorResponse(w, http.StatusServiceUnavailable, codeUnavailable, msgUnavailable)
	default:
		writeErrorResponse(w, http.StatusInternalServerError, codeInternalError, err.Error())
	}
}
