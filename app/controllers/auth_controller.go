package controllers

import (
	"errors"
	"net/http"

	"github.com/aranya-labs/aranya/app/services"
	"github.com/aranya-labs/aranya/pkg/auth"
	"github.com/aranya-labs/aranya/pkg/middleware"
	"github.com/aranya-labs/aranya/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

type registerInput struct {
	Name                 string `json:"name" validate:"required,min=2,max=100"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8,max=72,confirmed"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if !bindJSON(w, r, &in) {
		return
	}

	user, token, err := c.service.Register(in.Name, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			response.Error(w, http.StatusConflict, err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not create account")
		return
	}

	auth.SetCookie(w, token)
	response.Created(w, map[string]interface{}{"user": user, "token": token})
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if !bindJSON(w, r, &in) {
		return
	}

	user, token, err := c.service.Login(in.Email, in.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	auth.SetCookie(w, token)
	response.Success(w, map[string]interface{}{"user": user, "token": token})
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearCookie(w)
	response.Message(w, "logged out")
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	user, err := c.service.Me(middleware.UserIDFromCtx(r.Context()))
	if err != nil {
		response.Unauthorized(w)
		return
	}
	response.Success(w, user)
}

type forgotInput struct {
	Email string `json:"email" validate:"required,email"`
}

func (c *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in forgotInput
	if !bindJSON(w, r, &in) {
		return
	}

	if err := c.service.ForgotPassword(in.Email); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not start password reset")
		return
	}
	response.Message(w, "if the email exists, a reset link has been sent")
}

type resetInput struct {
	Token                string `json:"token" validate:"required"`
	Password             string `json:"password" validate:"required,min=8,max=72,confirmed"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var in resetInput
	if !bindJSON(w, r, &in) {
		return
	}

	if err := c.service.ResetPassword(in.Token, in.Password); err != nil {
		if errors.Is(err, services.ErrInvalidResetToken) {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(w, http.StatusInternalServerError, "could not reset password")
		return
	}
	response.Message(w, "password updated")
}
