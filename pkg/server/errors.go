package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/marek-kar/riskdash/pkg/analysis"
	"github.com/marek-kar/riskdash/pkg/dataset"
	"github.com/marek-kar/riskdash/pkg/scoring"
)

const (
	codeBadRequest    = "bad_request"
	codeValidation    = "validation_failed"
	codeInvalidFactor = "invalid_factor"
	codeInvalidScore  = "invalid_score"
	codeUnknownField  = "unknown_field"
	codeInternal      = "internal"
)

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func abortWithError(c *gin.Context, status int, code, message string, details ...ErrorDetail) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message, Details: details}})
}

// classify maps a domain error to its HTTP status and error code.
func classify(err error) (int, string) {
	var rce *analysis.ReportComputationError
	if errors.As(err, &rce) {
		switch rce.Kind {
		case analysis.KindMalformedInput:
			return http.StatusBadRequest, string(rce.Kind)
		case analysis.KindInvalidRecord:
			return http.StatusUnprocessableEntity, string(rce.Kind)
		default:
			return http.StatusInternalServerError, string(rce.Kind)
		}
	}

	var fe *scoring.InvalidFactorError
	if errors.As(err, &fe) {
		return http.StatusUnprocessableEntity, codeInvalidFactor
	}
	var se *scoring.InvalidScoreError
	if errors.As(err, &se) {
		return http.StatusUnprocessableEntity, codeInvalidScore
	}
	var ufe *analysis.UnknownFieldError
	if errors.As(err, &ufe) {
		return http.StatusBadRequest, codeUnknownField
	}
	if errors.Is(err, dataset.ErrNoData) || errors.Is(err, dataset.ErrUnsupportedFormat) {
		return http.StatusBadRequest, codeBadRequest
	}
	return http.StatusInternalServerError, codeInternal
}

func respondError(c *gin.Context, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal error"
	}
	abortWithError(c, status, code, msg)
}

// respondBindError reports a request that failed to decode or validate.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]ErrorDetail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, ErrorDetail{Field: fe.Field(), Message: validationMessage(fe)})
		}
		abortWithError(c, http.StatusBadRequest, codeValidation, "request validation failed", details...)
		return
	}
	abortWithError(c, http.StatusBadRequest, codeBadRequest, err.Error())
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of " + fe.Param()
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
