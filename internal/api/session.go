package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "pharmanear/m/pkg/errors"
)

type ctxKey string

const ctxPharmacy ctxKey = "pharmacy"

const sessionTTL = 12 * time.Hour

// sessionClaims identify the pharmacy a dashboard session acts for. There is
// no credential behind them; opening a session is the page's mock login.
type sessionClaims struct {
	Pharmacy string `json:"pharmacy"`
	jwt.RegisteredClaims
}

func (h *Handler) generateToken(pharmacy string) (string, error) {
	now := h.now()
	claims := sessionClaims{
		Pharmacy: pharmacy,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   pharmacy,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}

func (h *Handler) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			respondAppError(w, apperrors.Wrap(apperrors.CodeUnauthorized, "missing bearer token", nil))
			return
		}
		tokenString := strings.TrimSpace(header[len("Bearer "):])
		token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(h.secret), nil
		}, jwt.WithTimeFunc(h.now))
		if err != nil || !token.Valid {
			respondAppError(w, apperrors.Wrap(apperrors.CodeUnauthorized, "invalid session token", err))
			return
		}
		claims, ok := token.Claims.(*sessionClaims)
		if !ok || claims.Pharmacy == "" {
			respondAppError(w, apperrors.Wrap(apperrors.CodeUnauthorized, "invalid session claims", nil))
			return
		}
		ctx := context.WithValue(r.Context(), ctxPharmacy, claims.Pharmacy)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func pharmacyFromContext(r *http.Request) string {
	if val, ok := r.Context().Value(ctxPharmacy).(string); ok {
		return val
	}
	return ""
}
