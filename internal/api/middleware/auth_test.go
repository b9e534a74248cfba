package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("segredo-de-teste")

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protegido", AuthMiddleware(secret), func(c *gin.Context) {
		_, ok := c.Get(ClaimsKey)
		c.JSON(http.StatusOK, gin.H{"claims": ok})
	})
	return r
}

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.MapClaims{"sub": "painel", "exp": exp.Unix()})
	s, err := token.SignedString(key)
	require.NoError(t, err)
	return s
}

func TestAuthMiddleware(t *testing.T) {
	valid := sign(t, jwt.SigningMethodHS256, secret, time.Now().Add(time.Hour))
	expired := sign(t, jwt.SigningMethodHS256, secret, time.Now().Add(-time.Hour))
	otherKey := sign(t, jwt.SigningMethodHS256, []byte("outra"), time.Now().Add(time.Hour))
	otherAlg := sign(t, jwt.SigningMethodHS512, secret, time.Now().Add(time.Hour))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"sem cabeçalho", "", http.StatusUnauthorized},
		{"sem Bearer", valid, http.StatusUnauthorized},
		{"token válido", "Bearer " + valid, http.StatusOK},
		{"token expirado", "Bearer " + expired, http.StatusUnauthorized},
		{"outra chave", "Bearer " + otherKey, http.StatusUnauthorized},
		{"outro algoritmo", "Bearer " + otherAlg, http.StatusUnauthorized},
	}

	r := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
