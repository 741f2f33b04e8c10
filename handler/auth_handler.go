package handler

import (
	"errors"
	"strings"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users *usecase.UsersService
}

func NewAuthHandler(users *usecase.UsersService) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=4,max=20"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrUsernameTaken) {
			utils.Conflict(c, "Username is already taken")
			return
		}
		utils.InternalError(c, "Failed to register user")
		return
	}

	utils.Created(c, dto.ToUserResponse(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	token, session, err := h.users.Login(c.Request.Context(),
		req.Username, req.Password, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			utils.Unauthorized(c, "Invalid username or password")
			return
		}
		utils.InternalError(c, "Failed to log in")
		return
	}

	utils.Success(c, gin.H{
		"token":      token,
		"session_id": session.SessionID,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		SessionID string `json:"session_id"`
	}
	// Body is optional; a missing session ID still invalidates the token
	// and clears the day marker.
	_ = c.ShouldBindJSON(&req)

	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	if err := h.users.Logout(c.Request.Context(), userID.(string), req.SessionID, token); err != nil {
		utils.InternalError(c, "Failed to log out")
		return
	}

	utils.Success(c, gin.H{"message": "Logged out"})
}
