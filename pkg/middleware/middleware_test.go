package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/lending-service/pkg/auth"
	mw "github.com/Astemirdum/lending-service/pkg/middleware"
)

func whoami(c echo.Context) error {
	name, err := auth.UserName(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return c.String(http.StatusOK, name+"/"+auth.UserRole(c.Request().Context()))
}

func signToken(t *testing.T, key []byte, profile auth.Profile, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Profile: profile,
	})
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestJwtAuthentication(t *testing.T) {
	auth.JWTKey = []byte("test-signing-key")

	e := echo.New()
	e.GET("/whoami", whoami, mw.JwtAuthentication)

	var tests = []struct {
		name          string
		authorization string
		expectedCode  int
		expectedBody  string
	}{
		{
			name: "ok",
			authorization: "Bearer " + signToken(t, auth.JWTKey,
				auth.Profile{Username: "alice", Role: "user"}, time.Now().Add(time.Hour)),
			expectedCode: http.StatusOK,
			expectedBody: "alice/user",
		},
		{
			name:          "err. no header",
			authorization: "",
			expectedCode:  http.StatusUnauthorized,
		},
		{
			name:          "err. not bearer",
			authorization: "Basic abc",
			expectedCode:  http.StatusUnauthorized,
		},
		{
			name:          "err. garbage token",
			authorization: "Bearer not.a.token",
			expectedCode:  http.StatusUnauthorized,
		},
		{
			name: "err. wrong key",
			authorization: "Bearer " + signToken(t, []byte("other-key"),
				auth.Profile{Username: "alice"}, time.Now().Add(time.Hour)),
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "err. expired",
			authorization: "Bearer " + signToken(t, auth.JWTKey,
				auth.Profile{Username: "alice"}, time.Now().Add(-time.Hour)),
			expectedCode: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/whoami", http.NoBody)
			if tt.authorization != "" {
				r.Header.Set(mw.AuthorizationHeader, tt.authorization)
			}
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				require.Equal(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestAuth_SchemeSelection(t *testing.T) {
	e := echo.New()

	// with a signing key, identity headers alone are rejected
	auth.JWTKey = []byte("test-signing-key")
	e.GET("/jwt", whoami, mw.Auth())

	r := httptest.NewRequest(http.MethodGet, "/jwt", http.NoBody)
	r.Header.Set(auth.XUserNameHeader, "alice")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// without one, the gateway headers carry identity
	auth.JWTKey = nil
	e.GET("/headers", whoami, mw.Auth())

	r = httptest.NewRequest(http.MethodGet, "/headers", http.NoBody)
	r.Header.Set(auth.XUserNameHeader, "alice")
	r.Header.Set(auth.XUserRoleHeader, "user")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "alice/user", w.Body.String())
}
