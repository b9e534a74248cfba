package middleware

import (
	"net/http"
	"strings"

	"github.com/LuisEduardoPedra/relatoriosOficina/internal/api/responses"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ClaimsKey é a chave do contexto onde os claims do token ficam disponíveis.
const ClaimsKey = "user_claims"

// AuthMiddleware exige um token JWT válido no cabeçalho Authorization.
func AuthMiddleware(jwtSecret []byte) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.Error(c, http.StatusUnauthorized, "Token de autorização não fornecido")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			responses.Error(c, http.StatusUnauthorized, "Formato do token inválido")
			return
		}

		token, err := parser.Parse(parts[1], func(*jwt.Token) (interface{}, error) {
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			responses.Error(c, http.StatusUnauthorized, "Token inválido ou expirado")
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			c.Set(ClaimsKey, claims)
		}

		c.Next()
	}
}
