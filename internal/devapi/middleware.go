package devapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	bearerPrefix    = "Bearer "
	requestIDHeader = "X-Request-ID"
	sessionKey      = "session"
)

var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidAuthFormat = errors.New("invalid authorization header format")
	ErrEmptyToken        = errors.New("empty token")
	ErrInvalidToken      = errors.New("invalid token")
	ErrAccountNotFound   = errors.New("account not found")
)

// Session is the authenticated caller of a request
type Session struct {
	AccountID string
	Email     string
	Role      string
}

func setSession(c *gin.Context, s *Session) {
	c.Set(sessionKey, s)
}

// GetSession returns the caller set by JWTAuthMiddleware
func GetSession(c *gin.Context) (*Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}

	s, ok := v.(*Session)
	return s, ok
}

func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}

	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrInvalidAuthFormat
	}

	token := strings.TrimPrefix(authHeader, bearerPrefix)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

func respondWithError(c *gin.Context, log zerolog.Logger, statusCode int, err error, message string) {
	log.Warn().Err(err).Msg(message)
	c.JSON(statusCode, gin.H{"error": message})
	c.Abort()
}

// JWTAuthMiddleware validates the bearer token and loads the account
func JWTAuthMiddleware(tokens *TokenIssuer, db *gorm.DB, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			var message string
			switch err {
			case ErrMissingAuthHeader:
				message = "Missing authorization header"
			case ErrInvalidAuthFormat:
				message = "Invalid authorization header format"
			case ErrEmptyToken:
				message = "Empty token"
			}
			respondWithError(c, log, http.StatusUnauthorized, err, message)
			return
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to validate JWT token")
			respondWithError(c, log, http.StatusUnauthorized, ErrInvalidToken, "Invalid or expired token")
			return
		}

		// Verify the account still exists
		account, err := findAccountByID(db, claims.UserID)
		if err != nil {
			log.Debug().Err(err).Str("user_id", claims.UserID).Msg("Account not found")
			respondWithError(c, log, http.StatusUnauthorized, ErrAccountNotFound, "User not found")
			return
		}

		setSession(c, &Session{
			AccountID: account.ID,
			Email:     account.Email,
			Role:      account.Role,
		})

		c.Next()
	}
}

// requestIDMiddleware echoes the caller's request ID, or assigns one
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = ulid.Make().String()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
