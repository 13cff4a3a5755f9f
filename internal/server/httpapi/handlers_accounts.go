package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/tzetzo/task-manager-api/internal/server/services"
)

// maxAvatarBytes caps avatar uploads at 1 MB.
const maxAvatarBytes = 1 << 20

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int64  `json:"age"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	account, err := s.accounts.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	token, err := s.accounts.IssueToken(c.Request.Context(), account)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": account.Public(), "token": token})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	account, err := s.accounts.FindByCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.renderError(c, err)
		return
	}

	token, err := s.accounts.IssueToken(c.Request.Context(), account)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": account.Public(), "token": token})
}

func (s *Server) logout(c *gin.Context) {
	account := currentAccount(c)

	if err := s.accounts.RevokeToken(c.Request.Context(), account.ID, currentToken(c)); err != nil {
		s.renderError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (s *Server) logoutAll(c *gin.Context) {
	account := currentAccount(c)

	if err := s.accounts.RevokeAllTokens(c.Request.Context(), account.ID); err != nil {
		s.renderError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentAccount(c).Public()})
}

var allowedAccountUpdates = map[string]struct{}{
	"name": {}, "email": {}, "password": {}, "age": {},
}

func (s *Server) updateMe(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// unknown fields are rejected outright rather than silently dropped
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	for field := range raw {
		if _, ok := allowedAccountUpdates[field]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid updates"})
			return
		}
	}

	var req struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
		Age      *int64  `json:"age"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	account, err := s.accounts.Update(c.Request.Context(), currentAccount(c), services.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": account.Public()})
}

func (s *Server) deleteMe(c *gin.Context) {
	account := currentAccount(c)

	if err := s.accounts.Delete(c.Request.Context(), account); err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": account.Public()})
}

func (s *Server) uploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}
	if fileHeader.Size > maxAvatarBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar must be at most 1MB"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.renderError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes))
	if err != nil {
		s.renderError(c, err)
		return
	}

	mtype := mimetype.Detect(data)
	if !mtype.Is("image/jpeg") && !mtype.Is("image/png") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar must be a jpg or png image"})
		return
	}

	if err := s.accounts.UpdateAvatar(c.Request.Context(), currentAccount(c), data); err != nil {
		s.renderError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// getAvatar serves the avatar by account id without auth.
func (s *Server) getAvatar(c *gin.Context) {
	account, err := s.accounts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	if len(account.Avatar) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.Data(http.StatusOK, mimetype.Detect(account.Avatar).String(), account.Avatar)
}

func (s *Server) deleteAvatar(c *gin.Context) {
	if err := s.accounts.RemoveAvatar(c.Request.Context(), currentAccount(c)); err != nil {
		s.renderError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
