// nolint: funlen
package httpserver_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinesearch/errs"
	"cinesearch/httpserver"
	"cinesearch/pkg/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Run("uses defaults with empty config", func(t *testing.T) {
		server := httpserver.Default(testConfig())

		assert.NotNil(t, server.Router, "Router should be initialized")
		assert.NotNil(t, server.Logger, "Logger should default to a no-op logger")
		assert.Equal(t, ":8080", server.Addr, "Default address should be :8080")
		assert.Equal(t, []string{"*"}, server.AllowOrigins, "Default CORS should allow all origins")
	})

	t.Run("reads port and origins from config", func(t *testing.T) {
		cfg := &config.Config{Port: 9000, AllowOrigins: "https://a.example.com, https://b.example.com"}

		server := httpserver.Default(cfg)

		assert.Equal(t, ":9000", server.Addr)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, server.AllowOrigins)
	})

	t.Run("accepts nil config", func(t *testing.T) {
		assert.NotNil(t, httpserver.Default(nil))
	})
}

func TestServerStartAndShutdown(t *testing.T) {
	// Arrange
	server := httpserver.Default(testConfig())
	port := allocateRandomPort(t)
	server.Addr = fmt.Sprintf("127.0.0.1:%d", port)

	// Act
	errChan := startServerAsync(server)

	// Assert
	assertServerIsRunning(t, port)
	assertServerStopsGracefully(t, server, errChan)
}

func TestRegisterGlobalMiddlewares(t *testing.T) {
	// Arrange
	server := httpserver.Default(testConfig())
	addTestRoute(server)

	// Act
	response := makeRequest(server, http.MethodGet, "/test", nil)

	// Assert
	assert.Equal(t, http.StatusOK, response.Code)
	assert.Len(t, response.Header().Get(echo.HeaderXRequestID), 36, "Request ID should be a uuid")
	assert.NotEmpty(t, response.Header().Get("X-Content-Type-Options"), "Secure middleware should add headers")
}

func TestCORSConfiguration(t *testing.T) {
	tests := []struct {
		name          string
		allowOrigins  string
		requestOrigin string
		expectOrigin  string
	}{
		{
			name:          "wildcard allows all origins",
			allowOrigins:  "",
			requestOrigin: "https://example.com",
			expectOrigin:  "*",
		},
		{
			name:          "specific origin is allowed",
			allowOrigins:  "https://example.com",
			requestOrigin: "https://example.com",
			expectOrigin:  "https://example.com",
		},
		{
			name:          "other origin is not allowed",
			allowOrigins:  "https://example.com",
			requestOrigin: "https://evil.example.org",
			expectOrigin:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			server := httpserver.Default(&config.Config{AllowOrigins: tt.allowOrigins})
			addTestRoute(server)

			// Act
			response := makeRequest(server, http.MethodGet, "/test", map[string]string{"Origin": tt.requestOrigin})

			// Assert
			assert.Equal(t, tt.expectOrigin, response.Header().Get(echo.HeaderAccessControlAllowOrigin))
		})
	}
}

func TestMiddlewareRecoveryBehavior(t *testing.T) {
	// Arrange
	server := httpserver.Default(testConfig())
	server.Router.GET("/panic", func(c echo.Context) error {
		panic("test panic")
	})

	// Act
	response := makeRequest(server, http.MethodGet, "/panic", nil)

	// Assert
	assert.Equal(t, http.StatusInternalServerError, response.Code, "Should return 500 on panic")
}

func TestCustomErrorHandler(t *testing.T) {
	tests := []struct {
		name               string
		error              error
		expectedStatusCode int
		expectedCode       string
		expectedMessage    string
	}{
		{
			name:               "invalid error returns 400",
			error:              errs.Errorf(errs.EINVALID, "invalid movie category"),
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       "100010",
			expectedMessage:    "invalid movie category",
		},
		{
			name:               "not found error returns 404",
			error:              errs.Errorf(errs.ENOTFOUND, "resource not found"),
			expectedStatusCode: http.StatusNotFound,
			expectedCode:       "100404",
			expectedMessage:    "resource not found",
		},
		{
			name:               "not implemented error returns 501",
			error:              errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured"),
			expectedStatusCode: http.StatusNotImplemented,
			expectedCode:       "100501",
			expectedMessage:    "movie service not configured",
		},
		{
			name:               "internal error returns 500 with generic message",
			error:              errs.Errorf(errs.EINTERNAL, "catalog decoder exploded"),
			expectedStatusCode: http.StatusInternalServerError,
			expectedCode:       "100500",
			expectedMessage:    "Internal server error",
		},
		{
			name:               "unknown error returns 500 with generic message",
			error:              fmt.Errorf("wrapped error: %w", errors.New("original error")),
			expectedStatusCode: http.StatusInternalServerError,
			expectedCode:       "100500",
			expectedMessage:    "Internal server error",
		},
		{
			name:               "context error returns 500",
			error:              context.DeadlineExceeded,
			expectedStatusCode: http.StatusInternalServerError,
			expectedCode:       "100500",
			expectedMessage:    "Internal server error",
		},
		{
			name:               "echo http error preserves status code",
			error:              echo.NewHTTPError(http.StatusForbidden, "forbidden"),
			expectedStatusCode: http.StatusForbidden,
			expectedCode:       "100403",
			expectedMessage:    "forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			server := httpserver.Default(testConfig())
			server.Router.GET("/error", func(c echo.Context) error {
				return tt.error
			})

			// Act
			response := makeRequest(server, http.MethodGet, "/error", nil)

			// Assert
			assert.Equal(t, tt.expectedStatusCode, response.Code)
			resp := decodeAPIResponse(t, response)
			assert.Equal(t, tt.expectedCode, resp.Code)
			assert.Equal(t, tt.expectedMessage, resp.Message)
		})
	}

	t.Run("unknown route returns 404 envelope", func(t *testing.T) {
		server := httpserver.Default(testConfig())

		response := makeRequest(server, http.MethodGet, "/api/nope", nil)

		assert.Equal(t, http.StatusNotFound, response.Code)
		assert.Equal(t, "100404", decodeAPIResponse(t, response).Code)
	})
}

// Helper functions for test setup and assertions

func allocateRandomPort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()
	return port
}

func startServerAsync(server *httpserver.Server) chan error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()
	return errChan
}

func assertServerIsRunning(t *testing.T, port int) {
	t.Helper()
	url := fmt.Sprintf("http://127.0.0.1:%d/healthcheck", port)
	assert.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond, "server should answer the health check")
}

func assertServerStopsGracefully(t *testing.T, server *httpserver.Server, errChan chan error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := server.Shutdown(ctx)
	assert.NoError(t, err, "Shutdown should complete without error")

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			t.Errorf("Unexpected error during shutdown: %v", err)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Server did not stop within timeout")
	}
}

func makeRequest(server *httpserver.Server, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}

func addTestRoute(server *httpserver.Server) {
	server.Router.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "test")
	})
}
