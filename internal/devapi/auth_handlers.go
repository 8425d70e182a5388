package devapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/equitydash/equitydash/internal/models"
)

const invalidCredentials = "Invalid email or password"

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := findAccountByEmail(s.db, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentials})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := VerifyPassword(req.Password, account.PasswordHash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": invalidCredentials})
		return
	}

	token, err := s.tokens.Generate(account.ID, account.Email, account.Role)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	s.logger.Info().Str("user_id", account.ID).Str("email", account.Email).Msg("User logged in")

	user := account.User()
	c.JSON(http.StatusOK, LoginResponse{Token: token, User: &user})
}

func (s *Server) getCurrentUser(c *gin.Context) {
	session, exists := GetSession(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := findAccountByID(s.db, session.AccountID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", session.AccountID).Msg("Failed to find account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, account.User())
}
