package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/civicspark/civic-site/internal/content/domain"
	"github.com/civicspark/civic-site/internal/forms"
	"github.com/civicspark/civic-site/internal/logging"
)

// Home lists the current content and records the visit.
func (h *Handler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	api := apiClient(c)

	if err := api.TrackVisit(ctx, c.ClientIP(), c.Request.UserAgent()); err != nil {
		logFailure(c, err, "track visit failed")
	}

	projects, err := api.Projects().List(ctx)
	if err != nil {
		logFailure(c, err, "load projects failed")
		projects = []domain.Project{}
	}
	events, err := api.Events().List(ctx)
	if err != nil {
		logFailure(c, err, "load events failed")
		events = []domain.Event{}
	}
	calendar, err := api.CalendarItems().List(ctx)
	if err != nil {
		logFailure(c, err, "load calendar failed")
		calendar = []domain.CalendarItem{}
	}

	render(c, http.StatusOK, "home.html", gin.H{
		"Title":    "Home",
		"Projects": projects,
		"Events":   events,
		"Calendar": calendar,
	})
}

func (h *Handler) About(c *gin.Context) {
	render(c, http.StatusOK, "about.html", gin.H{"Title": "About"})
}

func (h *Handler) ContactForm(c *gin.Context) {
	render(c, http.StatusOK, "contact.html", gin.H{"Title": "Contact", "Form": forms.Contact{}})
}

// SubmitContact acknowledges a contact message. Messages are logged, not
// delivered.
func (h *Handler) SubmitContact(c *gin.Context) {
	form := forms.Contact{
		Name:    strings.TrimSpace(c.PostForm("name")),
		Email:   strings.TrimSpace(c.PostForm("email")),
		Subject: strings.TrimSpace(c.PostForm("subject")),
		Message: strings.TrimSpace(c.PostForm("message")),
	}

	if err := form.Validate(); err != nil {
		toasts(c).Error(err.Error())
		render(c, http.StatusUnprocessableEntity, "contact.html", gin.H{"Title": "Contact", "Form": form})
		return
	}

	logging.FromContext(c.Request.Context()).Info().
		Str("name", form.Name).
		Str("email", form.Email).
		Str("subject", form.Subject).
		Msg("contact message received")

	toasts(c).Success("Thank you for your message! We'll get back to you soon.")
	render(c, http.StatusOK, "contact.html", gin.H{"Title": "Contact", "Form": forms.Contact{}})
}
