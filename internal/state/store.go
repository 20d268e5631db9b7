package state

import (
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/google/uuid"

	"MatrixBoard/internal/board"
)

// StorageKey is where the table is persisted.
const StorageKey = "tableData"

// Storage is the string key/value store rows persist to.
// fyne.Preferences satisfies it.
type Storage interface {
	String(key string) string
	SetString(key, value string)
	RemoveValue(key string)
}

// Store holds the table rows in insertion order and writes every change
// through to storage.
type Store struct {
	rows    []Row
	storage Storage
	mu      sync.RWMutex

	// OnChange fires after any mutation with a copy of the rows.
	OnChange func([]Row)
}

// NewStore loads the rows persisted in storage. A nil storage keeps rows
// in memory only. Unreadable data is logged and discarded.
func NewStore(storage Storage) *Store {
	s := &Store{storage: storage}
	if storage == nil {
		return s
	}
	raw := storage.String(StorageKey)
	if raw == "" {
		return s
	}
	if err := json.Unmarshal([]byte(raw), &s.rows); err != nil {
		log.Printf("[TABLE] discarding unreadable %s: %v", StorageKey, err)
		s.rows = nil
		return s
	}
	log.Printf("[TABLE] loaded %d rows", len(s.rows))
	return s
}

// Add validates f and appends it as a new row with a fresh ID.
func (s *Store) Add(f Fields) (Row, error) {
	if err := Validate(f); err != nil {
		return Row{}, err
	}
	row := Row{ID: uuid.New(), Name: f.Name, Age: f.Age, Email: f.Email}

	s.mu.Lock()
	s.rows = append(s.rows, row)
	s.mu.Unlock()

	log.Printf("[TABLE] row added: %s", row.ID)
	s.changed()
	return row, nil
}

// Update replaces the fields of the row with id.
func (s *Store) Update(id uuid.UUID, f Fields) (Row, error) {
	if err := Validate(f); err != nil {
		return Row{}, err
	}

	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return Row{}, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	s.rows[i].Name, s.rows[i].Age, s.rows[i].Email = f.Name, f.Age, f.Email
	row := s.rows[i]
	s.mu.Unlock()

	log.Printf("[TABLE] row updated: %s", id)
	s.changed()
	return row, nil
}

func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}
	s.rows = slices.Delete(s.rows, i, i+1)
	s.mu.Unlock()

	log.Printf("[TABLE] row deleted: %s", id)
	s.changed()
	return nil
}

// Clear drops every row and removes the persisted table.
func (s *Store) Clear() {
	s.mu.Lock()
	s.rows = nil
	s.mu.Unlock()

	if s.storage != nil {
		s.storage.RemoveValue(StorageKey)
	}
	log.Printf("[TABLE] all rows deleted")
	if s.OnChange != nil {
		s.OnChange(nil)
	}
}

func (s *Store) Get(id uuid.UUID) (Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.index(id)
	if i < 0 {
		return Row{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return s.rows[i], nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Rows returns the rows in insertion order.
func (s *Store) Rows() []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rows)
}

// View returns the rows as the table page shows them: ordered by sort,
// then filtered by query over name and email.
func (s *Store) View(sort Sort, query string) []Row {
	rows := s.Rows()
	if sort.Key != SortNone {
		slices.SortStableFunc(rows, sort.compare)
	}
	if query == "" {
		return rows
	}
	return slices.DeleteFunc(rows, func(r Row) bool { return !r.Matches(query) })
}

// Annotations projects the rows onto the board's annotation stack,
// numbered from 1 and labelled with the row name.
func (s *Store) Annotations() []board.Annotation {
	rows := s.Rows()
	list := make([]board.Annotation, len(rows))
	for i, r := range rows {
		list[i] = board.Annotation{ID: i + 1, Content: r.Name}
	}
	return list
}

func (s *Store) index(id uuid.UUID) int {
	return slices.IndexFunc(s.rows, func(r Row) bool { return r.ID == id })
}

func (s *Store) changed() {
	rows := s.Rows()
	if s.storage != nil {
		data, err := json.Marshal(rows)
		if err != nil {
			log.Printf("[TABLE] could not encode rows: %v", err)
		} else {
			s.storage.SetString(StorageKey, string(data))
		}
	}
	if s.OnChange != nil {
		s.OnChange(rows)
	}
}
