package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/fadecrew/barbershop-api/internal/config"
)

const ContextPrincipal = "principal"

// Principal is the authenticated caller as carried through the request
// context. BarbershopID is nil for clients and superadmins.
type Principal struct {
	UserID       uint
	Role         string
	BarbershopID *uint
}

// GetPrincipal returns the caller, or nil on unauthenticated requests
// that passed through OptionalAuth.
func GetPrincipal(c *gin.Context) *Principal {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*Principal)
	return p
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, errCode := principalFromHeader(c, cfg)
		if p == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errCode})
			return
		}

		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

// OptionalAuth attaches a principal when a valid token is present and
// lets anonymous requests through untouched. Used where guests are
// allowed (public booking).
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if p, _ := principalFromHeader(c, cfg); p != nil {
				c.Set(ContextPrincipal, p)
			}
		}
		c.Next()
	}
}

func principalFromHeader(c *gin.Context, cfg *config.Config) (*Principal, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "missing_authorization_header"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, "invalid_authorization_header"
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, "invalid_token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "invalid_token_claims"
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, "invalid_token_payload"
	}
	role, _ := claims["role"].(string)

	p := &Principal{
		UserID: uint(sub),
		Role:   role,
	}
	if shopID, ok := claims["barbershopId"].(float64); ok && shopID > 0 {
		id := uint(shopID)
		p.BarbershopID = &id
	}

	return p, ""
}
