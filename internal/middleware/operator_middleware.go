package middleware

import (
	"fmt"
	"strings"

	"designmecha-mes/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// OperatorMiddleware tags every request with the acting operator. The
// product is effectively login-less: identity is a label on the work, not
// an account. A signed bearer token (claim "operator") is honored when
// present and valid; otherwise the X-Operator header is taken as-is, and
// with neither the request proceeds as "unknown". Nothing is rejected here.
func OperatorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		operator := ""

		authHeader := c.GetHeader("Authorization")
		if parts := strings.Split(authHeader, " "); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && len(config.JwtKey) > 0 {
			token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return config.JwtKey, nil
			})
			if err == nil && token.Valid {
				if claims, ok := token.Claims.(jwt.MapClaims); ok {
					if name, ok := claims["operator"].(string); ok {
						operator = name
					}
				}
			}
		}

		if operator == "" {
			operator = c.GetHeader("X-Operator")
		}
		if operator == "" {
			operator = "unknown"
		}

		c.Set("operator", operator)
		c.Next()
	}
}
