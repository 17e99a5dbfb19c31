package web

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// DashboardClaims are the claims of a dashboard bearer token. Guilds lists
// the guild ids the holder may manage.
type DashboardClaims struct {
	Guilds []string `json:"guilds"`
	jwt.RegisteredClaims
}

// CanManage reports whether the token grants access to guildID
func (c *DashboardClaims) CanManage(guildID string) bool {
	return slices.Contains(c.Guilds, guildID)
}

// Authenticator validates dashboard tokens signed with a shared secret.
// With an empty secret every request is let through.
type Authenticator struct {
	secret []byte
}

// NewAuthenticator creates an Authenticator for secret
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Enabled reports whether tokens are checked at all
func (a *Authenticator) Enabled() bool {
	return len(a.secret) > 0
}

// IssueToken signs a token for userID valid for ttl
func (a *Authenticator) IssueToken(userID string, guilds []string, ttl time.Duration) (string, error) {
	if !a.Enabled() {
		return "", errors.New("dashboard secret not configured")
	}
	now := time.Now()
	claims := DashboardClaims{
		Guilds: guilds,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Parse validates tokenString and returns its claims
func (a *Authenticator) Parse(tokenString string) (*DashboardClaims, error) {
	claims := &DashboardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// bearerToken extracts the token from the Authorization header, falling
// back to ?token= for websocket clients that cannot set headers.
func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.Query("token")
}

// RequireGuildAccess rejects requests whose token does not cover the :id
// path parameter.
func (a *Authenticator) RequireGuildAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Enabled() {
			c.Next()
			return
		}

		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "Authorization header required",
				"request_id": c.GetString("request_id"),
			})
			return
		}

		claims, err := a.Parse(tokenString)
		if err != nil {
			logger.Warn(fmt.Sprintf("Token rechazado desde %s: %v", c.ClientIP(), err), "WebServer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "Invalid or expired token",
				"request_id": c.GetString("request_id"),
			})
			return
		}

		guildID := c.Param("id")
		if !claims.CanManage(guildID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "Forbidden",
				"message":    "No tienes acceso a este servidor.",
				"request_id": c.GetString("request_id"),
			})
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("jwt_claims", claims)
		c.Next()
	}
}
