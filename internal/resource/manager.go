// Package resource keeps a local, disposable copy of one remote content list
// and refetches it after every mutation.
package resource

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/civicspark/civic-site/internal/logging"
)

// Remote is the list/create/update/delete surface of one resource type.
type Remote[T any, F any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, fields F) (T, error)
	Update(ctx context.Context, id string, fields F) (T, error)
	Delete(ctx context.Context, id string) error
}

// Notifier receives one transient message per operation outcome.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Confirmer asks the user a blocking yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Labels name a resource type in user-facing messages.
type Labels struct {
	Singular string // "project"
	Plural   string // "projects"
}

// Manager drives one resource type. It owns no persistent state: items is a
// cache of the last successful List.
type Manager[T any, F any] struct {
	remote Remote[T, F]
	notify Notifier
	labels Labels

	items []T
}

func NewManager[T any, F any](remote Remote[T, F], notify Notifier, labels Labels) *Manager[T, F] {
	return &Manager[T, F]{remote: remote, notify: notify, labels: labels}
}

// Items returns a copy of the cached list.
func (m *Manager[T, F]) Items() []T {
	return slices.Clone(m.items)
}

// List refetches the whole list. On failure the previous items are kept.
func (m *Manager[T, F]) List(ctx context.Context) error {
	items, err := m.remote.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("resource", m.labels.Plural).Msg("list failed")
		m.notify.Error(fmt.Sprintf("Failed to load %s", m.labels.Plural))
		return err
	}
	m.items = items
	return nil
}

// Create submits a new record and refetches on success. On failure nothing
// changes, so the form can be shown again with the submitted values.
func (m *Manager[T, F]) Create(ctx context.Context, fields F) error {
	if _, err := m.remote.Create(ctx, fields); err != nil {
		m.notify.Error(err.Error())
		return err
	}
	m.notify.Success(fmt.Sprintf("%s created successfully", m.title()))
	return m.List(ctx)
}

// Update replaces the mutable fields of the record id.
func (m *Manager[T, F]) Update(ctx context.Context, id string, fields F) error {
	if _, err := m.remote.Update(ctx, id, fields); err != nil {
		m.notify.Error(err.Error())
		return err
	}
	m.notify.Success(fmt.Sprintf("%s updated successfully", m.title()))
	return m.List(ctx)
}

// Delete asks for confirmation first. A declined prompt issues no request and
// reports false.
func (m *Manager[T, F]) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if !confirm.Confirm(m.DeletePrompt()) {
		return false, nil
	}
	if err := m.remote.Delete(ctx, id); err != nil {
		m.notify.Error(err.Error())
		return true, err
	}
	m.notify.Success(fmt.Sprintf("%s deleted successfully", m.title()))
	return true, m.List(ctx)
}

// DeletePrompt is the question asked before a delete.
func (m *Manager[T, F]) DeletePrompt() string {
	return fmt.Sprintf("Are you sure you want to delete this %s?", m.labels.Singular)
}

func (m *Manager[T, F]) title() string {
	s := m.labels.Singular
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
