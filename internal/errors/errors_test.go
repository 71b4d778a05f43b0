package errors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("disk full")

	tests := []struct {
		name         string
		err          *AppError
		wantCategory ErrorCategory
		wantStatus   int
	}{
		{"source", NewSourceError("commits.json", cause), CategorySource, http.StatusUnprocessableEntity},
		{"storage", NewStorageError("insert batch", cause), CategoryStorage, http.StatusInternalServerError},
		{"configuration", NewConfigurationError("addr must not be empty", nil), CategoryConfiguration, http.StatusInternalServerError},
		{"rate limit", NewRateLimitError("60s"), CategoryRateLimit, http.StatusTooManyRequests},
		{"internal", NewInternalError("unexpected", cause), CategoryInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCategory, tt.err.Category)
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
			assert.False(t, tt.err.Timestamp.IsZero())
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrorIncludesCategory(t *testing.T) {
	err := NewStorageError("insert batch", nil)
	assert.Contains(t, err.Error(), "storage")
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewInternalError("wrapped", cause)
	assert.ErrorIs(t, err, cause)
}

func TestToAppError(t *testing.T) {
	appErr := NewSourceError("prs.json", nil)
	assert.Same(t, appErr, ToAppError(appErr), "an AppError passes through unchanged")

	converted := ToAppError(errors.New("plain"))
	require.NotNil(t, converted)
	assert.Equal(t, CategoryInternal, converted.Category)
	assert.Equal(t, http.StatusInternalServerError, converted.HTTPStatus)

	assert.Nil(t, ToAppError(nil))
}

func TestErrorHandlerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/boom", func(c *gin.Context) {
		c.Error(NewSourceError("transcript.json", errors.New("no such file")))
	})
	router.GET("/plain", func(c *gin.Context) {
		c.Error(errors.New("something else"))
	})
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"fine": true})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "source")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plain", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
