package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"immigration-crm/internal/authz"
	"immigration-crm/pkg/response"
)

// TokenExpiry is how long an issued bearer token stays valid. Claims inside
// a live token are trusted as-is, so role changes only take effect once the
// token is reissued.
const TokenExpiry = 24 * time.Hour

// Context keys populated by RequireAuth
const (
	ContextKeyUserID   = "userID"
	ContextKeyUsername = "username"
	ContextKeyUserRole = "userRole"
)

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in release mode")
		}
		secret = "default_super_secret_key" // Development fallback only, DO NOT use in production
	}
	return []byte(secret)
}

// SignToken issues a signed bearer token carrying the identity claims the
// rest of a request trusts.
func SignToken(userID, username, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"role":     role,
		"iat":      now.Unix(),
		"exp":      now.Add(TokenExpiry).Unix(),
	})
	return token.SignedString(GetJWTSecret())
}

// ParseToken verifies the signature and expiry of a bearer token and returns
// its claims. Only HMAC-signed tokens are accepted.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return GetJWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// RequireAuth validates the bearer token on the Authorization header and
// stores the identity claims in the gin context. It rejects before any
// handler logic runs, so no domain operation starts without an identity.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
			return
		}

		claims, err := ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid or expired token"))
			return
		}

		userID, _ := claims["sub"].(string)
		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)
		if userID == "" || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyUsername, username)
		c.Set(ContextKeyUserRole, role)

		c.Next()
	}
}

// RequireAction gates a route by the authz policy table. Must run after
// RequireAuth. Ownership-exempt rules cannot be decided here (the resource
// is not loaded yet); services evaluate those via authz.CheckOwner.
func RequireAction(action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextKeyUserRole)
		if err := authz.Check(role, action); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}
		c.Next()
	}
}

// Identity is the authenticated actor extracted from a validated token.
type Identity struct {
	ID       string
	Username string
	Role     string
}

// CurrentIdentity pulls the authenticated identity out of the gin context.
func CurrentIdentity(c *gin.Context) Identity {
	return Identity{
		ID:       c.GetString(ContextKeyUserID),
		Username: c.GetString(ContextKeyUsername),
		Role:     c.GetString(ContextKeyUserRole),
	}
}
