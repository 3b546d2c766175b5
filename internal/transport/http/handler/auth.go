package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapi/internal/app"
	"blogapi/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
	userService *app.UserService
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=128"`
	Password string `json:"password" binding:"required,max=128"`
}

func NewAuthHandler(authService *app.AuthService, userService *app.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token":      result.Token,
		"token_type": result.TokenType,
		"user":       result.User,
	})
}

// Register shares user-create semantics with POST /users; it only differs in
// being reachable without a token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req StoreUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), app.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "User created successfully", user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := currentToken(c)
	if ok {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			_ = c.Error(err)
			return
		}
	}

	response.Success(c, http.StatusOK, "Successfully logged out", nil)
}
