package state

import (
	"strings"

	"github.com/google/uuid"
)

// Row is one record of the table page.
type Row struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Age   int       `json:"age"`
	Email string    `json:"email"`
}

// Fields are the editable parts of a row.
type Fields struct {
	Name  string
	Age   int
	Email string
}

func (r Row) Fields() Fields {
	return Fields{Name: r.Name, Age: r.Age, Email: r.Email}
}

// Matches reports whether query occurs in the name or the email,
// ignoring case. An empty query matches everything.
func (r Row) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Email), q)
}

type SortKey string

const (
	SortNone  SortKey = ""
	SortName  SortKey = "name"
	SortAge   SortKey = "age"
	SortEmail SortKey = "email"
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// Sort is the column ordering picked on the table page.
type Sort struct {
	Key       SortKey
	Direction Direction
}

// Toggle returns the ordering after the user clicks the column key: the
// same column flips ascending to descending, anything else starts ascending.
func (s Sort) Toggle(key SortKey) Sort {
	if s.Key == key && s.Direction == Ascending {
		return Sort{Key: key, Direction: Descending}
	}
	return Sort{Key: key, Direction: Ascending}
}

func (s Sort) compare(a, b Row) int {
	var c int
	switch s.Key {
	case SortName:
		c = strings.Compare(a.Name, b.Name)
	case SortEmail:
		c = strings.Compare(a.Email, b.Email)
	case SortAge:
		c = a.Age - b.Age
	}
	if s.Direction == Descending {
		return -c
	}
	return c
}
