package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rextj1/laragigs/internal/service"
)

type registerForm struct {
	Name                 string `form:"name" binding:"required"`
	Email                string `form:"email" binding:"required,email"`
	Password             string `form:"password" binding:"required,min=6"`
	PasswordConfirmation string `form:"password_confirmation" binding:"required,eqfield=Password"`
}

type loginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

func (h *Handler) showRegister(c *gin.Context) {
	h.render(c, http.StatusOK, "users.register", gin.H{"form": registerForm{}})
}

func (h *Handler) createUser(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "users.register", gin.H{
			"form":   form,
			"errors": []string{"Please fill in all fields with a valid email and matching passwords"},
		})
		return
	}

	user, err := h.users.Register(c.Request.Context(), form.Name, form.Email, form.Password, form.PasswordConfirmation)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			h.render(c, http.StatusUnprocessableEntity, "users.register", gin.H{
				"form":   form,
				"errors": []string{"That email is already registered"},
			})
			return
		}
		h.logger.WithError(err).Error("register user")
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	if err := h.sessions.LogIn(c, user.ID); err != nil {
		h.logger.WithError(err).Error("establish session after registration")
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	h.sessions.Flash(c, "message", "User created and logged in")
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) showLogin(c *gin.Context) {
	h.render(c, http.StatusOK, "users.login", gin.H{"form": loginForm{}})
}

func (h *Handler) authenticate(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "users.login", gin.H{
			"form":   form,
			"errors": []string{"Email and password are required"},
		})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.render(c, http.StatusUnprocessableEntity, "users.login", gin.H{
				"form":   form,
				"errors": []string{"Invalid credentials"},
			})
			return
		}
		h.logger.WithError(err).Error("authenticate user")
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	if err := h.sessions.LogIn(c, user.ID); err != nil {
		h.logger.WithError(err).Error("establish session after login")
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	h.sessions.Flash(c, "message", "You are logged in!")
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.sessions.LogOut(c); err != nil {
		h.logger.WithError(err).Error("destroy session")
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}

	h.sessions.Flash(c, "message", "You have been logged out!")
	c.Redirect(http.StatusFound, "/")
}
