package domain

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("record not found")

// Project is an initiative shown on the public site. Description is markdown.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProjectFields struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// Event is a one-off happening. Date is a calendar date (YYYY-MM-DD).
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Date      *string   `json:"date"`
	Location  *string   `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EventFields struct {
	Name     string  `json:"name"`
	Date     *string `json:"date"`
	Location *string `json:"location"`
}

// CalendarItem spans an optional date range. An end date before the start
// date is accepted as is.
type CalendarItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartDate *string   `json:"start_date"`
	EndDate   *string   `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CalendarItemFields struct {
	Title     string  `json:"title"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}
