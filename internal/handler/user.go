package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/logger"
	"github.com/iliyamo/cinema-ticket-booking/internal/middleware"
	"github.com/iliyamo/cinema-ticket-booking/internal/service"
	"github.com/iliyamo/cinema-ticket-booking/internal/session"
	"github.com/iliyamo/cinema-ticket-booking/internal/utils"
)

const (
	msgEmailExists    = "A user with this email already exists."
	msgBadCredentials = "Email or password is incorrect."
	msgBadRegister    = "Please enter your name, a valid email and a password."
	msgLongPassword   = "Passwords are limited to 72 bytes."
)

// UserHandler serves registration, login and logout.
type UserHandler struct {
	Users  *service.UserService
	Store  session.Store
	Secret string
	TTL    time.Duration
	Log    *logger.Logger
}

func NewUserHandler(users *service.UserService, store session.Store, secret string, ttl time.Duration, log *logger.Logger) *UserHandler {
	return &UserHandler{Users: users, Store: store, Secret: secret, TTL: ttl, Log: log}
}

type registerForm struct {
	FullName string `form:"full_name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,max=72"`
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (h *UserHandler) RegisterPage(c echo.Context) error {
	return renderPage(c, http.StatusOK, "register", newPage(c, "Register", nil))
}

// Register handles POST /users/register.
func (h *UserHandler) Register(c echo.Context) error {
	var form registerForm
	if err := bindForm(c, &form); err != nil {
		p := newPage(c, "Register", &registerForm{FullName: form.FullName, Email: form.Email})
		p.Error = msgBadRegister
		return renderPage(c, http.StatusBadRequest, "register", p)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.Register(ctx, form.FullName, form.Email, form.Password)
	if errors.Is(err, service.ErrPasswordTooLong) {
		p := newPage(c, "Register", &registerForm{FullName: form.FullName, Email: form.Email})
		p.Error = msgLongPassword
		return renderPage(c, http.StatusBadRequest, "register", p)
	}
	if errors.Is(err, service.ErrEmailExists) {
		p := newPage(c, "Register", &registerForm{FullName: form.FullName, Email: form.Email})
		p.Error = msgEmailExists
		return renderPage(c, http.StatusConflict, "register", p)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}
	h.Log.Infof("SECURITY", "user %d registered", u.ID)
	return c.Redirect(http.StatusSeeOther, "/users/login")
}

// LoginPage handles GET /users/login and shows any pending flash message.
func (h *UserHandler) LoginPage(c echo.Context) error {
	p := newPage(c, "Log in", nil)
	p.Flash = takeFlash(c)
	return renderPage(c, http.StatusOK, "login", p)
}

// Login handles POST /users/login.  On success a server-side session is
// created and the signed cookie set.
func (h *UserHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return h.loginFailed(c, form.Email)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.Authenticate(ctx, form.Email, form.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.Log.LogSecurity("LOGIN_FAILED", c.RealIP())
		return h.loginFailed(c, form.Email)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}

	sid, err := h.Store.Create(ctx, u.ID)
	if err != nil {
		return serverError(c, h.Log, err)
	}
	tok, err := utils.NewSessionToken(h.Secret, sid, h.TTL)
	if err != nil {
		_ = h.Store.Delete(ctx, sid)
		return serverError(c, h.Log, err)
	}
	middleware.SetSessionCookie(c, tok)
	return c.Redirect(http.StatusSeeOther, "/films")
}

func (h *UserHandler) loginFailed(c echo.Context, email string) error {
	p := newPage(c, "Log in", &loginForm{Email: email})
	p.Error = msgBadCredentials
	return renderPage(c, http.StatusUnauthorized, "login", p)
}

// Logout handles GET /users/logout.  Deleting the server-side session
// invalidates the cookie even if the browser keeps it.
func (h *UserHandler) Logout(c echo.Context) error {
	if sid, ok := middleware.SessionID(c); ok {
		ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
		defer cancel()
		if err := h.Store.Delete(ctx, sid); err != nil {
			h.Log.Errorf("SESSION", "delete session: %v", err)
		}
	}
	middleware.ClearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/users/login")
}
