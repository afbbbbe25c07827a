package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
	jwt "github.com/golang-jwt/jwt/v5"
)

type sessionKey struct{}

// WithSession returns a context carrying sess.
func WithSession(ctx context.Context, sess domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the request's session, or the zero Session for
// anonymous requests.
func SessionFromContext(ctx context.Context) domain.Session {
	sess, _ := ctx.Value(sessionKey{}).(domain.Session)
	return sess
}

// Authenticate reads the bearer token issued by the quotation backend and
// stores the resulting session on the request context. With a secret the
// token signature is verified (HS256); without one the claims are only
// decoded and the backend remains the authority on the token.
// Requests without an Authorization header continue anonymously.
func Authenticate(secret []byte, logger *log.Logger, next http.Handler) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		token := extractBearer(header)
		if token == "" {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}

		sess, err := parseSession(token, secret)
		if err != nil {
			logger.Printf("WARN: session rejected path=%s err=%v", r.URL.Path, err)
			writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// RequireRoles rejects anonymous requests with 401 and sessions without one
// of roles with 403. No roles means any authenticated session.
func RequireRoles(next http.Handler, roles ...domain.Role) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if !sess.Authenticated() {
			writeError(w, http.StatusUnauthorized, codeUnauthorized, domain.ErrUnauthorized.Error())
			return
		}
		if len(roles) > 0 && !sess.HasRole(roles...) {
			writeError(w, http.StatusForbidden, codeForbidden, domain.ErrForbidden.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractBearer(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func parseSession(token string, secret []byte) (domain.Session, error) {
	claims := jwt.MapClaims{}
	if len(secret) > 0 {
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			return domain.Session{}, err
		}
		if !parsed.Valid {
			return domain.Session{}, errors.New("token invalid")
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return domain.Session{}, err
		}
	}

	userID, err := claimUserID(claims)
	if err != nil {
		return domain.Session{}, err
	}
	role := domain.Role(strings.ToUpper(claimString(claims, "tipo_usuario", "role")))
	if !role.Valid() {
		return domain.Session{}, fmt.Errorf("unknown role %q", role)
	}
	return domain.Session{Token: token, UserID: userID, Role: role}, nil
}

func claimUserID(claims jwt.MapClaims) (int64, error) {
	for _, key := range []string{"id_usuario", "sub", "id"} {
		switch v := claims[key].(type) {
		case float64:
			if v > 0 {
				return int64(v), nil
			}
		case string:
			if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
				return id, nil
			}
		}
	}
	return 0, errors.New("token has no user id")
}

func claimString(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
