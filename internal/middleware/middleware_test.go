package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wholesale-be/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestIDFrom(r.Context())
	}))

	t.Run("Generates ID when missing", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("Preserves existing ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, "test-id-123")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "test-id-123", seen)
		assert.Equal(t, "test-id-123", w.Header().Get(RequestIDHeader))
	})
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(logger.Replace(zap.New(core)))

	handler := RequestID(Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/products", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/missing", nil))

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 2)

	ok := entries[0]
	assert.Equal(t, zapcore.InfoLevel, ok.Level)
	assert.Equal(t, "/api/v1/products", ok.ContextMap()["path"])
	assert.EqualValues(t, 200, ok.ContextMap()["status"])
	assert.EqualValues(t, 2, ok.ContextMap()["bytes"])
	assert.NotEmpty(t, ok.ContextMap()["request_id"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.EqualValues(t, 404, entries[1].ContextMap()["status"])
}

func TestCors(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := CORS([]string{"http://localhost:3000"})(nextHandler)

	t.Run("OPTIONS request", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/v1/cart/items", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.True(t, w.Code == http.StatusOK || w.Code == http.StatusNoContent)
	})

	t.Run("Normal request", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/products", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unknown origin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/products", nil)
		req.Header.Set("Origin", "http://evil.test")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

var testSecret = []byte("test-secret")

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return token
}

func runSession(req *http.Request) (*httptest.ResponseRecorder, string, bool) {
	var (
		session string
		reached bool
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		session, _ = SessionFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	Session(testSecret, false)(next).ServeHTTP(w, req)
	return w, session, reached
}

func TestSession_Guest(t *testing.T) {
	t.Run("Issues New Guest ID", func(t *testing.T) {
		w, session, _ := runSession(httptest.NewRequest("GET", "/api/v1/cart", nil))

		require.True(t, strings.HasPrefix(session, "guest:"))
		id := strings.TrimPrefix(session, "guest:")
		assert.Equal(t, id, w.Header().Get(SessionHeader))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, SessionCookie, cookies[0].Name)
		assert.Equal(t, id, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("Reuses Header", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest("GET", "/api/v1/cart", nil)
		req.Header.Set(SessionHeader, id)

		w, session, _ := runSession(req)
		assert.Equal(t, "guest:"+id, session)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("Reuses Cookie", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest("GET", "/api/v1/cart", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: id})

		_, session, _ := runSession(req)
		assert.Equal(t, "guest:"+id, session)
	})

	t.Run("Replaces Malformed ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/cart", nil)
		req.Header.Set(SessionHeader, "../../etc/passwd")

		w, session, _ := runSession(req)
		assert.NotEqual(t, "guest:../../etc/passwd", session)
		assert.Len(t, w.Result().Cookies(), 1)
	})

	t.Run("Non Bearer Header Is Guest", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/cart", nil)
		req.Header.Set("Authorization", "Basic user:pass")

		_, session, reached := runSession(req)
		assert.True(t, reached)
		assert.True(t, strings.HasPrefix(session, "guest:"))
	})
}

func TestSession_Token(t *testing.T) {
	t.Run("Valid Bearer Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/cart", nil)
		req.Header.Set("Authorization", "Bearer "+signed(t, jwt.MapClaims{
			"user_id": float64(1),
			"exp":     time.Now().Add(time.Hour).Unix(),
		}))

		w, session, _ := runSession(req)
		assert.Equal(t, "user:1", session)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("Valid Cookie Token With String ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/cart", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: signed(t, jwt.MapClaims{
			"user_id": "u-42",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})})

		_, session, _ := runSession(req)
		assert.Equal(t, "user:u-42", session)
	})

	rejected := map[string]string{
		"Invalid Token": "invalid-token",
		"Expired Token": signed(t, jwt.MapClaims{"user_id": float64(1), "exp": time.Now().Add(-time.Hour).Unix()}),
		"Missing Exp":   signed(t, jwt.MapClaims{"user_id": float64(1)}),
		"Missing User":  signed(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}),
		"Wrong Secret": func() string {
			s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"user_id": float64(1),
				"exp":     time.Now().Add(time.Hour).Unix(),
			}).SignedString([]byte("other"))
			return s
		}(),
	}
	for name, token := range rejected {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/cart", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			w, _, reached := runSession(req)
			assert.False(t, reached)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}
