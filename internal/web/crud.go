package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/civicspark/civic-site/internal/client"
	"github.com/civicspark/civic-site/internal/content/domain"
	"github.com/civicspark/civic-site/internal/forms"
	"github.com/civicspark/civic-site/internal/resource"
)

// screen is the admin list/form page of one content type. The form posts
// back to the same page, which renders the refreshed list with the outcome
// toasts.
type screen[T any, F any] struct {
	path     string // under /admin
	template string
	title    string
	labels   resource.Labels
	remote   func(*client.Client) resource.Remote[T, F]
	id       func(T) string
	values   func(T) map[string]string
	fields   []string // form inputs kept on a failed submit
	required []requiredField
	parse    func(values map[string]string) F
}

type requiredField struct {
	name, label string
}

func (s screen[T, F]) register(rg *gin.RouterGroup) {
	rg.GET(s.path, s.index)
	rg.POST(s.path, s.create)
	rg.GET(s.path+"/:id/edit", s.edit)
	rg.POST(s.path+"/:id", s.update)
	rg.GET(s.path+"/:id/delete", s.confirmDelete)
	rg.POST(s.path+"/:id/delete", s.delete)
}

func (s screen[T, F]) manager(c *gin.Context) *resource.Manager[T, F] {
	return resource.NewManager[T, F](s.remote(apiClient(c)), toasts(c), s.labels)
}

func (s screen[T, F]) action() string {
	return "/admin/" + s.path
}

func (s screen[T, F]) page(c *gin.Context, status int, m *resource.Manager[T, F], data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = s.title
	data["Active"] = s.path
	data["Action"] = s.action()
	data["Items"] = m.Items()
	if _, ok := data["Values"]; !ok {
		data["Values"] = map[string]string{}
	}
	render(c, status, s.template, data)
}

func (s screen[T, F]) submitted(c *gin.Context) (map[string]string, error) {
	values := make(map[string]string, len(s.fields))
	for _, f := range s.fields {
		values[f] = c.PostForm(f)
	}
	for _, r := range s.required {
		if err := forms.Required(r.name, r.label, values[r.name]); err != nil {
			return values, err
		}
	}
	return values, nil
}

func (s screen[T, F]) find(m *resource.Manager[T, F], id string) (T, bool) {
	for _, item := range m.Items() {
		if s.id(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (s screen[T, F]) index(c *gin.Context) {
	m := s.manager(c)
	_ = m.List(c.Request.Context())
	s.page(c, http.StatusOK, m, nil)
}

func (s screen[T, F]) edit(c *gin.Context) {
	m := s.manager(c)
	_ = m.List(c.Request.Context())

	item, ok := s.find(m, c.Param("id"))
	if !ok {
		toasts(c).Error(fmt.Sprintf("%s not found", capitalize(s.labels.Singular)))
		s.page(c, http.StatusNotFound, m, nil)
		return
	}
	s.page(c, http.StatusOK, m, gin.H{
		"EditID": s.id(item),
		"Values": s.values(item),
	})
}

func (s screen[T, F]) create(c *gin.Context) {
	ctx := c.Request.Context()
	m := s.manager(c)
	_ = m.List(ctx)

	values, err := s.submitted(c)
	if err != nil {
		toasts(c).Error(err.Error())
		s.page(c, http.StatusUnprocessableEntity, m, gin.H{"Values": values})
		return
	}
	if err := m.Create(ctx, s.parse(values)); err != nil {
		logFailure(c, err, "create failed")
		s.page(c, http.StatusUnprocessableEntity, m, gin.H{"Values": values})
		return
	}
	s.page(c, http.StatusOK, m, nil)
}

func (s screen[T, F]) update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	m := s.manager(c)
	_ = m.List(ctx)

	values, err := s.submitted(c)
	if err != nil {
		toasts(c).Error(err.Error())
		s.page(c, http.StatusUnprocessableEntity, m, gin.H{"EditID": id, "Values": values})
		return
	}
	if err := m.Update(ctx, id, s.parse(values)); err != nil {
		logFailure(c, err, "update failed")
		s.page(c, http.StatusUnprocessableEntity, m, gin.H{"EditID": id, "Values": values})
		return
	}
	s.page(c, http.StatusOK, m, nil)
}

// confirmDelete asks the delete question. Answering it posts to delete.
func (s screen[T, F]) confirmDelete(c *gin.Context) {
	m := s.manager(c)
	render(c, http.StatusOK, "confirm_delete.html", gin.H{
		"Title":  s.title,
		"Active": s.path,
		"Prompt": m.DeletePrompt(),
		"Action": fmt.Sprintf("%s/%s/delete", s.action(), c.Param("id")),
		"Back":   s.action(),
	})
}

func (s screen[T, F]) delete(c *gin.Context) {
	ctx := c.Request.Context()
	m := s.manager(c)
	_ = m.List(ctx)

	answer := c.PostForm("confirm") == "yes"
	_, err := m.Delete(ctx, c.Param("id"), resource.ConfirmFunc(func(string) bool { return answer }))
	if err != nil {
		logFailure(c, err, "delete failed")
	}
	s.page(c, http.StatusOK, m, nil)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var projectScreen = screen[domain.Project, domain.ProjectFields]{
	path:     "projects",
	template: "projects.html",
	title:    "Projects",
	labels:   resource.Labels{Singular: "project", Plural: "projects"},
	remote: func(c *client.Client) resource.Remote[domain.Project, domain.ProjectFields] {
		return c.Projects()
	},
	id: func(p domain.Project) string { return p.ID },
	values: func(p domain.Project) map[string]string {
		return map[string]string{"title": p.Title, "description": deref(p.Description)}
	},
	fields:   []string{"title", "description"},
	required: []requiredField{{"title", "Title"}},
	parse: func(v map[string]string) domain.ProjectFields {
		return domain.ProjectFields{Title: v["title"], Description: forms.Optional(v["description"])}
	},
}

var eventScreen = screen[domain.Event, domain.EventFields]{
	path:     "events",
	template: "events.html",
	title:    "Events",
	labels:   resource.Labels{Singular: "event", Plural: "events"},
	remote: func(c *client.Client) resource.Remote[domain.Event, domain.EventFields] {
		return c.Events()
	},
	id: func(e domain.Event) string { return e.ID },
	values: func(e domain.Event) map[string]string {
		return map[string]string{"name": e.Name, "date": deref(e.Date), "location": deref(e.Location)}
	},
	fields:   []string{"name", "date", "location"},
	required: []requiredField{{"name", "Name"}},
	parse: func(v map[string]string) domain.EventFields {
		return domain.EventFields{
			Name:     v["name"],
			Date:     forms.Optional(v["date"]),
			Location: forms.Optional(v["location"]),
		}
	},
}

var calendarScreen = screen[domain.CalendarItem, domain.CalendarItemFields]{
	path:     "calendar",
	template: "calendar.html",
	title:    "Calendar",
	labels:   resource.Labels{Singular: "calendar item", Plural: "calendar items"},
	remote: func(c *client.Client) resource.Remote[domain.CalendarItem, domain.CalendarItemFields] {
		return c.CalendarItems()
	},
	id: func(i domain.CalendarItem) string { return i.ID },
	values: func(i domain.CalendarItem) map[string]string {
		return map[string]string{"title": i.Title, "start_date": deref(i.StartDate), "end_date": deref(i.EndDate)}
	},
	fields:   []string{"title", "start_date", "end_date"},
	required: []requiredField{{"title", "Title"}},
	parse: func(v map[string]string) domain.CalendarItemFields {
		return domain.CalendarItemFields{
			Title:     v["title"],
			StartDate: forms.Optional(v["start_date"]),
			EndDate:   forms.Optional(v["end_date"]),
		}
	},
}
