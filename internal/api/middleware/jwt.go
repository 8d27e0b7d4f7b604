package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/nimbusgrid/platform-go/internal/config"
	"github.com/nimbusgrid/platform-go/pkg/response"
)

var jwtKey []byte

// Init sets the JWT verification key shared with the identity provider.
func Init() {
	jwtKey = []byte(config.JwtSecret)
}

// Claims are the identity-provider token claims the platform consumes. The
// subject is the opaque user id; profile fields ride along for first-contact
// profile creation.
type Claims struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"given_name,omitempty"`
	LastName  string `json:"family_name,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed token. The identity provider does this in
// production; the helper exists for the agent and for tests.
func GenerateToken(userID, email string, expireDuration time.Duration) (string, error) {
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expireDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    config.Issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ParseToken validates and extracts claims.
func ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, err
	}
	return claims, nil
}

// JWTAuthMiddleware resolves the caller's identity from a Bearer header or
// cookie. Every failure mode yields the same uniform 401 body; no handler
// runs without an identity.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				abortUnauthorized(c)
				return
			}
			tokenStr = parts[1]
		} else if cookie, err := c.Cookie("token"); err == nil {
			tokenStr = cookie
		} else {
			abortUnauthorized(c)
			return
		}

		claims, err := ParseToken(tokenStr)
		if err != nil || claims.Subject == "" {
			abortUnauthorized(c)
			return
		}
		if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
			abortUnauthorized(c)
			return
		}

		c.Set("claims", claims)
		c.Set("userID", claims.Subject)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
}
