package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blogapi/internal/app"
	"blogapi/internal/transport/http/response"
)

type UserHandler struct {
	userService *app.UserService
}

type StoreUserRequest struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email,max=128"`
	Password             string `json:"password" binding:"required,min=8,max=128"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

// UpdateUserRequest fields are pointers so an omitted field stays untouched.
type UpdateUserRequest struct {
	Name                 *string `json:"name" binding:"omitempty,max=255"`
	Email                *string `json:"email" binding:"omitempty,email,max=128"`
	Password             *string `json:"password" binding:"omitempty,min=8,max=128"`
	PasswordConfirmation *string `json:"password_confirmation"`
}

func NewUserHandler(userService *app.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *gin.Context) {
	users, info, err := h.userService.List(intQuery(c, "page"), intQuery(c, "per_page"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "", response.NewPage(users, info.Page, info.PerPage, info.Total))
}

func (h *UserHandler) Create(c *gin.Context) {
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

func (h *UserHandler) Show(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		_ = c.Error(app.ErrForbidden)
		return
	}

	id, err := idParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.Get(principal, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved successfully", user)
}

func (h *UserHandler) Update(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		_ = c.Error(app.ErrForbidden)
		return
	}

	id, err := idParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), principal, id, app.UpdateUserInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User updated successfully", user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		_ = c.Error(app.ErrForbidden)
		return
	}

	id, err := idParam(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), principal, id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
