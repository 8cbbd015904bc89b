package handler

import (
	"github.com/labstack/echo/v4"

	"upcyclehub/internal/usecase"
	"upcyclehub/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type registerRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=32"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"fullName" validate:"required"`
	Avatar      string `json:"avatar,omitempty" validate:"omitempty,url"`
	IsSeller    bool   `json:"isSeller"`
	IsCollector bool   `json:"isCollector"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		Avatar:      req.Avatar,
		IsSeller:    req.IsSeller,
		IsCollector: req.IsCollector,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	token, user, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID := c.Get("uid").(int64)

	user, err := h.authUseCase.GetUser(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

// Logout is a no-op server side; tokens are stateless and expire on their
// own. The endpoint exists so clients have a uniform sign-out call.
func (h *AuthHandler) Logout(c echo.Context) error {
	return response.Success(c, map[string]string{"message": "Logged out successfully"})
}
