package handler

import (
	"net/http"

	"giftly-be/internal/store"
	"giftly-be/internal/user"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	userService  user.Service
	storeService store.Service
}

func NewAuthHandler(userService user.Service, storeService store.Service) *AuthHandler {
	return &AuthHandler{userService: userService, storeService: storeService}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type vendorRegisterRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Name        string  `json:"name"`
	StoreName   string  `json:"store_name"`
	Description *string `json:"description"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  user.User    `json:"user"`
	Store *store.Store `json:"store,omitempty"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and name are required")
	}

	token, u, err := h.userService.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, authResponse{Token: token, User: u})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	token, u, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, User: u})
}

func (h *AuthHandler) VendorRegister(c echo.Context) error {
	ctx := c.Request().Context()

	var req vendorRegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Name == "" || req.StoreName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email, name and store_name are required")
	}

	token, u, st, err := h.storeService.RegisterVendor(ctx, store.VendorRegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		StoreName:   req.StoreName,
		Description: req.Description,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, authResponse{Token: token, User: u, Store: &st})
}

type updateProfileRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

func (h *AuthHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	u, err := h.userService.GetProfile(ctx, currentUserID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	u, err := h.userService.UpdateProfile(ctx, currentUserID(c), user.UpdateProfileInput{
		Name:      req.Name,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, u)
}
