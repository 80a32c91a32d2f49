package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/civicspark/civic-site/internal/forms"
	"github.com/civicspark/civic-site/internal/session"
)

const dashboardPath = "/admin/dashboard"

func signedIn(c *gin.Context) bool {
	s := sessionStore(c)
	return s != nil && s.State() == session.StateAuthenticated
}

func (h *Handler) LoginForm(c *gin.Context) {
	if signedIn(c) {
		c.Redirect(http.StatusSeeOther, dashboardPath)
		return
	}
	render(c, http.StatusOK, "login.html", gin.H{"Title": "Admin login", "Email": ""})
}

// Login signs in from the form. A signed-in admin is sent to the dashboard
// without touching the current session.
func (h *Handler) Login(c *gin.Context) {
	if signedIn(c) {
		c.Redirect(http.StatusSeeOther, dashboardPath)
		return
	}

	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	fail := func(status int, msg string) {
		render(c, status, "login.html", gin.H{"Title": "Admin login", "Email": email, "Error": msg})
	}

	if err := forms.Required("email", "Email", email); err != nil {
		fail(http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := forms.Required("password", "Password", password); err != nil {
		fail(http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := sessionStore(c).Login(c.Request.Context(), email, password); err != nil {
		logFailure(c, err, "login failed")
		fail(http.StatusUnauthorized, userMessage(err))
		return
	}
	c.Redirect(http.StatusSeeOther, dashboardPath)
}

func (h *Handler) RegisterForm(c *gin.Context) {
	if signedIn(c) {
		c.Redirect(http.StatusSeeOther, dashboardPath)
		return
	}
	render(c, http.StatusOK, "register.html", gin.H{"Title": "Create admin account", "Name": "", "Email": ""})
}

// Register checks the confirmation locally before anything is sent.
func (h *Handler) Register(c *gin.Context) {
	if signedIn(c) {
		c.Redirect(http.StatusSeeOther, dashboardPath)
		return
	}

	form := forms.Registration{
		Name:                 strings.TrimSpace(c.PostForm("name")),
		Email:                strings.TrimSpace(c.PostForm("email")),
		Password:             c.PostForm("password"),
		PasswordConfirmation: c.PostForm("password_confirmation"),
	}
	fail := func(status int, msg string) {
		render(c, status, "register.html", gin.H{
			"Title": "Create admin account",
			"Name":  form.Name,
			"Email": form.Email,
			"Error": msg,
		})
	}

	if err := form.Validate(); err != nil {
		fail(http.StatusUnprocessableEntity, err.Error())
		return
	}

	err := sessionStore(c).Register(c.Request.Context(), form.Name, form.Email, form.Password, form.PasswordConfirmation)
	if err != nil {
		logFailure(c, err, "register failed")
		fail(http.StatusUnprocessableEntity, userMessage(err))
		return
	}
	c.Redirect(http.StatusSeeOther, dashboardPath)
}
