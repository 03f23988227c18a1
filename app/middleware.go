package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
	"github.com/TheReasonWePlay/FTVN-sub001/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID injects a request id into the context and the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			id, _ := uuid.NewV7()
			rid = id.String()
		}
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), ctxKeyRequestID, rid))
		c.Next()
	}
}

// RequestLogger logs one line per request once the handler chain returns.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", RequestIDFrom(c.Request.Context())),
		}
		if a, ok := ActorFrom(c.Request.Context()); ok {
			fields = append(fields, zap.String("matricule", a.Matricule))
		}
		logger.Info("request", fields...)
	}
}

type errorBody struct {
	Message    string                 `json:"message"`
	StatusCode int                    `json:"statusCode"`
	Code       apperrors.Kind         `json:"code"`
	Fields     []apperrors.FieldError `json:"fields,omitempty"`
	Stack      string                 `json:"stack,omitempty"`
}

// ErrorHandler renders the last error pushed with c.Error as
// {success: false, error: {...}}. Stacks and store messages are only exposed in development.
func ErrorHandler(development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr, ok := apperrors.IsAppError(err)
		if !ok {
			appErr = apperrors.Database(err, "unexpected error")
		}

		body := errorBody{
			Message:    appErr.Message,
			StatusCode: appErr.HTTPStatus(),
			Code:       appErr.Kind,
			Fields:     appErr.FieldErrors,
		}

		fields := []zap.Field{
			zap.String("code", string(appErr.Kind)),
			zap.String("message", appErr.Message),
			zap.Int("status", body.StatusCode),
			zap.String("request_id", RequestIDFrom(c.Request.Context())),
		}
		if appErr.Err != nil {
			fields = append(fields, zap.Error(appErr.Err))
		}

		if body.StatusCode >= http.StatusInternalServerError {
			logger.Error("request failed", fields...)
			if !development {
				body.Message = "An internal error occurred"
			}
		} else {
			logger.Warn("request rejected", fields...)
		}
		if development && appErr.Err != nil {
			body.Stack = fmt.Sprintf("%+v", appErr.Err)
		}

		c.JSON(body.StatusCode, gin.H{"success": false, "error": body})
	}
}

// Fail pushes err for ErrorHandler and stops the chain.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
