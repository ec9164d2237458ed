package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"taskboard/internal/apperror"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrorBody is the payload of every failed request.
type ErrorBody struct {
	Code    apperror.Code `json:"code" example:"NOT_FOUND"`
	Message string        `json:"message" example:"card not found"`
	Details any           `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// RegisterValidation makes gin's validator report fields by their JSON names.
func RegisterValidation() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// respondError writes err as an ErrorResponse. Server-side failures are
// attached to the context for the request logger and hidden from the client.
func respondError(c *gin.Context, err error) {
	appErr := apperror.From(err)
	status := appErr.HTTPStatus()

	if appErr.ClientError() {
		c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		}})
		return
	}

	_ = c.Error(err)
	message := "Internal server error"
	if appErr.Code == apperror.CodeStoreUnavailable {
		message = appErr.Message
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: appErr.Code, Message: message}})
}

// bindJSON decodes the body into req and runs its binding rules.
func bindJSON(c *gin.Context, req any) error {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.Validation("Invalid request body")
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return apperror.ValidationWithDetails("Invalid request", fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a valid UUID"
	case "gte", "min":
		return "must be greater than or equal to " + fe.Param()
	default:
		return "is invalid"
	}
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperror.ValidationWithDetails("Invalid "+what+" ID format", map[string]string{"id": "must be a valid UUID"}))
		return uuid.Nil, false
	}
	return id, true
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
