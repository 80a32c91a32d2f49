// Package web serves the public site and the admin back-office. Every page
// load talks to the API through its own client and session store.
package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/civicspark/civic-site/internal/api/http/middleware"
	"github.com/civicspark/civic-site/internal/client"
	"github.com/civicspark/civic-site/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

// Raw HTML in markdown is escaped since WithUnsafe is not set.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

type Config struct {
	APIBaseURL    string
	SecureCookies bool
	TokenTTL      time.Duration // token cookie lifetime
	HTTPClient    *http.Client

	// TrustedProxies may set X-Forwarded-For for the visitor address. Nil
	// trusts none.
	TrustedProxies []string
}

type Handler struct {
	cfg Config
}

// NewRouter builds the site. CSRF protection is applied by the caller around
// the returned engine.
func NewRouter(cfg Config) (*gin.Engine, error) {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	h := &Handler{cfg: cfg}
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(gin.Recovery(), middleware.RequestID())
	r.SetHTMLTemplate(tmpl)
	r.Use(h.LoadSession())

	r.GET("/", h.Home)
	r.GET("/about", h.About)
	r.GET("/contact", h.ContactForm)
	r.POST("/contact", h.SubmitContact)

	r.GET("/admin", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, "/admin/dashboard") })
	r.GET("/admin/login", h.LoginForm)
	r.POST("/admin/login", h.Login)
	r.GET("/admin/register", h.RegisterForm)
	r.POST("/admin/register", h.Register)
	r.POST("/admin/logout", h.Logout)

	admin := r.Group("/admin", RequireAdmin())
	admin.GET("/dashboard", h.Dashboard)
	admin.GET("/statistics", h.Statistics)
	projectScreen.register(admin)
	eventScreen.register(admin)
	calendarScreen.register(admin)

	return r, nil
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"deref":    deref,
		"markdown": markdown,
		"browser": func(ua *string) string {
			return Browser(deref(ua))
		},
		"datetime": func(t time.Time) string {
			return t.Local().Format("2006-01-02 15:04")
		},
	}).ParseFS(templateFS, "templates/*.html")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func markdown(s *string) template.HTML {
	md := deref(s)
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// render writes a page with the fields every layout needs.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CSRFField"] = csrf.TemplateField(c.Request)
	data["Toasts"] = toasts(c).Messages
	if s := sessionStore(c); s != nil {
		data["Admin"] = s.Principal()
	}
	c.HTML(status, name, data)
}

// userMessage turns an API error into text for the page.
func userMessage(err error) string {
	var netErr *client.NetworkError
	if errors.As(err, &netErr) {
		return "Unable to reach the server. Please try again."
	}
	return err.Error()
}

func logFailure(c *gin.Context, err error, msg string) {
	logging.FromContext(c.Request.Context()).Warn().Err(err).Msg(msg)
}
