package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/hireboard/hireboard/internal/constants"
	"github.com/hireboard/hireboard/internal/dto"
	apierrors "github.com/hireboard/hireboard/internal/errors"
	"github.com/hireboard/hireboard/internal/middleware"
	"github.com/hireboard/hireboard/internal/models"
	"github.com/hireboard/hireboard/internal/respond"
	"github.com/hireboard/hireboard/internal/services"
)

// SessionOptions controls the lifetime of the login cookie.
type SessionOptions struct {
	TTL         time.Duration
	RememberTTL time.Duration
	Secure      bool
}

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	session     SessionOptions
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, session SessionOptions) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		session:     session,
	}
}

// RegisterForm describes the registration form.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{
		"roles": []models.Role{models.RoleSeeker, models.RoleEmployer},
	})
}

// Register creates an account and logs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, services.ValidationError(err, services.ErrMissingFields), "/register")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
	})
	if err != nil {
		respond.Error(c, err, "/register")
		return
	}

	if err := h.startSession(c, user, false); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	landing := services.LandingPath(user.Role)
	respond.Done(c, http.StatusCreated, dto.SessionDTO{
		User:     dto.ToUserDTO(*user),
		Redirect: landing,
	}, landing, "Registration successful! Welcome!")
}

// LoginForm describes the login form.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{"remember": true})
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, services.ValidationError(err, services.ErrInvalidCredentials), "/login")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respond.Error(c, err, "/login")
		return
	}

	if err := h.startSession(c, user, bool(req.Remember)); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	landing := services.LandingPath(user.Role)
	respond.Done(c, http.StatusOK, dto.SessionDTO{
		User:     dto.ToUserDTO(*user),
		Redirect: landing,
	}, landing, "")
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(h.options(-1))
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	if respond.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func (h *AuthHandler) startSession(c *gin.Context, user *models.User, remember bool) error {
	ttl := h.session.TTL
	if remember {
		ttl = h.session.RememberTTL
	}

	session := sessions.Default(c)
	session.Clear()
	session.Options(h.options(int(ttl.Seconds())))
	session.Set(constants.ContextKeyUserID, user.ID)
	session.Set(constants.SessionKeyLogin, time.Now().Unix())
	return session.Save()
}

func (h *AuthHandler) options(maxAge int) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   h.session.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
