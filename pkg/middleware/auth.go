package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rouvinerh/is4302-project/pkg/response"
)

const (
	// AuthorizationHeader is the header carrying the bearer token
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the expected authorization scheme
	BearerPrefix = "Bearer "
	// ContextKeyUserID is the context key for the authenticated participant id
	ContextKeyUserID = "user_id"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// AuthConfig holds JWT validation settings
type AuthConfig struct {
	Secret string
	Issuer string
}

// Auth returns a middleware that authenticates requests with a bearer JWT.
// The subject claim is the participant identity; handlers read it with
// GetUserID.
func Auth(cfg *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthorizationHeader)
		if !strings.HasPrefix(header, BearerPrefix) {
			response.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}

		participantID, err := ValidateToken(cfg, strings.TrimPrefix(header, BearerPrefix))
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				response.Unauthorized(c, "token expired")
			} else {
				response.Unauthorized(c, "invalid token")
			}
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, participantID)
		c.Next()
	}
}

// ValidateToken validates a token and returns the participant id it carries.
func ValidateToken(cfg *AuthConfig, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	if cfg.Issuer != "" {
		issuer, err := claims.GetIssuer()
		if err != nil || issuer != cfg.Issuer {
			return "", ErrInvalidToken
		}
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}

	return subject, nil
}

// IssueToken signs a token for a participant. Used by provisioning tooling
// and tests.
func IssueToken(cfg *AuthConfig, participantID string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": participantID,
		"iss": cfg.Issuer,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(cfg.Secret))
}

// GetUserID returns the authenticated participant id from gin context
func GetUserID(c *gin.Context) (string, bool) {
	id, exists := c.Get(ContextKeyUserID)
	if !exists {
		return "", false
	}
	s, ok := id.(string)
	return s, ok
}
