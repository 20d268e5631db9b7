package state

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MatrixBoard/internal/board"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   []string
	}{
		{"valid", Fields{Name: "Ada", Age: 36, Email: "ada@example.com"}, nil},
		{"all missing", Fields{}, []string{"Name is required.", "Email is required.", "Age must be a positive number."}},
		{"blank name", Fields{Name: "   ", Age: 1, Email: "a@b.co"}, []string{"Name is required."}},
		{"bad email", Fields{Name: "Bo", Age: 2, Email: "bo@example"}, []string{"Email is invalid."}},
		{"negative age", Fields{Name: "Cy", Age: -4, Email: "cy@x.io"}, []string{"Age must be a positive number."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.fields)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidRow)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			var msgs []string
			for _, f := range verr.Fields {
				msgs = append(msgs, f.Message)
			}
			assert.Equal(t, tt.want, msgs)
		})
	}
}

func TestStoreCRUD(t *testing.T) {
	s := NewStore(nil)
	var notified int
	s.OnChange = func([]Row) { notified++ }

	a, err := s.Add(Fields{Name: "Ada", Age: 36, Email: "ada@example.com"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, a.ID)

	_, err = s.Add(Fields{Name: "", Age: 1, Email: "x@y.z"})
	assert.ErrorIs(t, err, ErrInvalidRow)
	assert.Equal(t, 1, s.Len())

	b, err := s.Add(Fields{Name: "Bo", Age: 20, Email: "bo@example.com"})
	require.NoError(t, err)

	updated, err := s.Update(a.ID, Fields{Name: "Ada L", Age: 37, Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, a.ID, updated.ID)
	assert.Equal(t, "Ada L", updated.Name)

	_, err = s.Update(uuid.New(), a.Fields())
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(b.ID))
	assert.ErrorIs(t, s.Delete(b.ID), ErrNotFound)

	got, err := s.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 37, got.Age)
	assert.Equal(t, 4, notified)
}

func TestStorePersistsToPreferences(t *testing.T) {
	prefs := test.NewApp().Preferences()
	prefs.RemoveValue(StorageKey)

	s := NewStore(prefs)
	_, err := s.Add(Fields{Name: "Ada", Age: 36, Email: "ada@example.com"})
	require.NoError(t, err)
	_, err = s.Add(Fields{Name: "Bo", Age: 20, Email: "bo@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, prefs.String(StorageKey))

	reloaded := NewStore(prefs)
	assert.Equal(t, s.Rows(), reloaded.Rows())

	reloaded.Clear()
	assert.Empty(t, prefs.String(StorageKey))
	assert.Zero(t, NewStore(prefs).Len())
}

func TestStoreDiscardsCorruptData(t *testing.T) {
	prefs := test.NewApp().Preferences()
	prefs.SetString(StorageKey, "{not json")
	assert.Zero(t, NewStore(prefs).Len())
}

func TestStoreView(t *testing.T) {
	s := NewStore(nil)
	for _, f := range []Fields{
		{Name: "charlie", Age: 30, Email: "c@corp.com"},
		{Name: "Alice", Age: 25, Email: "alice@home.org"},
		{Name: "bob", Age: 41, Email: "bob@corp.com"},
	} {
		_, err := s.Add(f)
		require.NoError(t, err)
	}

	names := func(rows []Row) []string {
		var out []string
		for _, r := range rows {
			out = append(out, r.Name)
		}
		return out
	}

	assert.Equal(t, []string{"charlie", "Alice", "bob"}, names(s.View(Sort{}, "")))

	byAge := Sort{}.Toggle(SortAge)
	assert.Equal(t, []string{"Alice", "charlie", "bob"}, names(s.View(byAge, "")))
	byAge = byAge.Toggle(SortAge)
	assert.Equal(t, Descending, byAge.Direction)
	assert.Equal(t, []string{"bob", "charlie", "Alice"}, names(s.View(byAge, "")))

	byName := byAge.Toggle(SortName)
	assert.Equal(t, Ascending, byName.Direction)
	assert.Equal(t, []string{"Alice", "bob", "charlie"}, names(s.View(byName, "")))

	assert.Equal(t, []string{"charlie", "bob"}, names(s.View(Sort{}, "CORP")))
	assert.Equal(t, []string{"Alice"}, names(s.View(byName, "ali")))
	assert.Empty(t, s.View(Sort{}, "30"))
}

func TestStoreAnnotations(t *testing.T) {
	s := NewStore(nil)
	_, _ = s.Add(Fields{Name: "A", Age: 1, Email: "a@b.cd"})
	_, _ = s.Add(Fields{Name: "B", Age: 2, Email: "b@b.cd"})

	assert.Equal(t, []board.Annotation{{ID: 1, Content: "A"}, {ID: 2, Content: "B"}}, s.Annotations())
}
