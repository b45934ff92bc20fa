package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wholesale-be/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SessionHeader     = "X-Session-ID"
	SessionCookie     = "session_id"
	AccessTokenCookie = "access_token"

	sessionMaxAge = 30 * 24 * time.Hour
)

// SessionFrom returns the cart owner attached by Session: "user:<id>" for an
// authenticated caller, "guest:<uuid>" otherwise.
func SessionFrom(ctx context.Context) (string, bool) {
	s := logger.SessionFrom(ctx)
	return s, s != ""
}

// Session identifies who owns the cart for this request. A valid access token
// wins; an invalid one is rejected with 401. Without a token the guest id from
// the X-Session-ID header or session_id cookie is used, and a new guest id is
// issued as a cookie when neither is present or well formed.
func Session(secret []byte, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var session string

			if token := extractAccessToken(r); token != "" {
				userID, err := parseUserID(token, secret)
				if err != nil {
					logger.FromCtx(r.Context()).Warn("rejected access token",
						zap.String("layer", "middleware"),
						zap.Error(err),
					)
					writeError(w, http.StatusUnauthorized, "invalid or expired token")
					return
				}
				session = "user:" + userID
			} else {
				session = "guest:" + guestID(w, r, secureCookie)
			}

			next.ServeHTTP(w, r.WithContext(logger.WithSession(r.Context(), session)))
		})
	}
}

func extractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

func parseUserID(tokenStr string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("unexpected claims type")
	}

	switch uid := claims["user_id"].(type) {
	case float64:
		return fmt.Sprintf("%d", int64(uid)), nil
	case string:
		if uid != "" {
			return uid, nil
		}
	}
	return "", fmt.Errorf("token has no user_id claim")
}

func guestID(w http.ResponseWriter, r *http.Request, secure bool) string {
	if id, ok := validGuestID(r.Header.Get(SessionHeader)); ok {
		return id
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if id, ok := validGuestID(cookie.Value); ok {
			return id
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set(SessionHeader, id)
	return id
}

func validGuestID(raw string) (string, bool) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
		"status":  status,
	})
}
