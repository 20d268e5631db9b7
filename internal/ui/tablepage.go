package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"MatrixBoard/internal/state"
)

// TablePage edits the rows that the board can show as annotations.
type TablePage struct {
	store  *state.Store
	window fyne.Window

	name, age, email *widget.Entry
	search           *widget.Entry
	list             *widget.List
	status           *widget.Label
	sortButtons      map[state.SortKey]*widget.Button

	sort state.Sort
	view []state.Row

	content fyne.CanvasObject
}

func NewTablePage(w fyne.Window, store *state.Store) *TablePage {
	p := &TablePage{
		store:       store,
		window:      w,
		name:        widget.NewEntry(),
		age:         widget.NewEntry(),
		email:       widget.NewEntry(),
		search:      widget.NewEntry(),
		status:      widget.NewLabel(""),
		sortButtons: make(map[state.SortKey]*widget.Button),
	}
	p.name.SetPlaceHolder("Name")
	p.age.SetPlaceHolder("Age")
	p.email.SetPlaceHolder("Email")
	p.search.SetPlaceHolder("Search by Name or Email")
	p.search.OnChanged = func(string) { p.refresh() }

	p.list = widget.NewList(
		func() int { return len(p.view) },
		p.createRow,
		p.updateRow,
	)

	form := container.NewGridWithColumns(4,
		p.name, p.age, p.email,
		widget.NewButtonWithIcon("Add Row", theme.ContentAddIcon(), p.AddRow),
	)
	sorts := container.NewHBox(widget.NewLabel("Sort:"))
	for _, key := range []state.SortKey{state.SortName, state.SortAge, state.SortEmail} {
		key := key
		btn := widget.NewButton(sortTitle(key, state.Sort{}), func() { p.SortBy(key) })
		p.sortButtons[key] = btn
		sorts.Add(btn)
	}
	controls := container.NewBorder(nil, nil, nil, sorts, p.search)

	top := container.NewVBox(
		widget.NewLabelWithStyle("Add New Row", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		controls,
	)
	bottom := container.NewBorder(nil, nil, nil,
		widget.NewButtonWithIcon("Delete Table", theme.DeleteIcon(), p.confirmClear),
		p.status,
	)
	p.content = container.NewBorder(top, bottom, nil, nil, p.list)

	store.OnChange = func([]state.Row) { p.refresh() }
	p.refresh()
	return p
}

func (p *TablePage) Content() fyne.CanvasObject {
	return p.content
}

// Visible returns the rows in the order and filter currently shown.
func (p *TablePage) Visible() []state.Row {
	return append([]state.Row(nil), p.view...)
}

func (p *TablePage) setStatus(text string) {
	fyne.Do(func() { p.status.SetText(text) })
}

// AddRow validates the entry row and appends it to the table.
func (p *TablePage) AddRow() {
	f := state.Fields{Name: p.name.Text, Age: parseAge(p.age.Text), Email: p.email.Text}
	if _, err := p.store.Add(f); err != nil {
		p.showInvalid(err)
		return
	}
	p.name.SetText("")
	p.age.SetText("")
	p.email.SetText("")
	p.setStatus("Row added successfully!")
}

// SortBy orders by key, flipping direction on a repeated click.
func (p *TablePage) SortBy(key state.SortKey) {
	p.sort = p.sort.Toggle(key)
	for k, btn := range p.sortButtons {
		btn.SetText(sortTitle(k, p.sort))
	}
	p.refresh()
}

func (p *TablePage) DeleteRow(id uuid.UUID) {
	if err := p.store.Delete(id); err != nil {
		dialog.ShowError(err, p.window)
		return
	}
	p.setStatus("Row deleted.")
}

// UpdateRow saves f over the row with id.
func (p *TablePage) UpdateRow(id uuid.UUID, f state.Fields) error {
	if _, err := p.store.Update(id, f); err != nil {
		return err
	}
	p.setStatus("Row updated successfully!")
	return nil
}

// ClearTable drops every row.
func (p *TablePage) ClearTable() {
	p.store.Clear()
	p.setStatus("All table data has been deleted.")
}

func (p *TablePage) confirmClear() {
	if p.store.Len() == 0 {
		p.ClearTable()
		return
	}
	dialog.ShowConfirm("Delete Table",
		"Are you sure you want to delete the entire table? This action cannot be undone.",
		func(ok bool) {
			if ok {
				p.ClearTable()
			}
		}, p.window)
}

func (p *TablePage) confirmDelete(id uuid.UUID) {
	dialog.ShowConfirm("Delete Row", "Are you sure you want to delete this row?", func(ok bool) {
		if ok {
			p.DeleteRow(id)
		}
	}, p.window)
}

func (p *TablePage) showEdit(row state.Row) {
	name := widget.NewEntry()
	name.SetText(row.Name)
	age := widget.NewEntry()
	age.SetText(strconv.Itoa(row.Age))
	email := widget.NewEntry()
	email.SetText(row.Email)

	items := []*widget.FormItem{
		widget.NewFormItem("Name", name),
		widget.NewFormItem("Age", age),
		widget.NewFormItem("Email", email),
	}
	dialog.ShowForm("Edit Row", "Save", "Cancel", items, func(save bool) {
		if !save {
			return
		}
		f := state.Fields{Name: name.Text, Age: parseAge(age.Text), Email: email.Text}
		if err := p.UpdateRow(row.ID, f); err != nil {
			p.showInvalid(err)
		}
	}, p.window)
}

func (p *TablePage) showInvalid(err error) {
	p.setStatus(err.Error())
	dialog.ShowError(err, p.window)
}

func (p *TablePage) refresh() {
	p.view = p.store.View(p.sort, p.search.Text)
	p.list.Refresh()
}

func (p *TablePage) createRow() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewLabel("name"),
		widget.NewLabel("age"),
		widget.NewLabel("email"),
		layout.NewSpacer(),
		widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), nil),
		widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
	)
}

func (p *TablePage) updateRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if id >= len(p.view) {
		return
	}
	row := p.view[id]
	objs := obj.(*fyne.Container).Objects
	objs[0].(*widget.Label).SetText(row.Name)
	objs[1].(*widget.Label).SetText(strconv.Itoa(row.Age))
	objs[2].(*widget.Label).SetText(row.Email)
	objs[4].(*widget.Button).OnTapped = func() { p.showEdit(row) }
	objs[5].(*widget.Button).OnTapped = func() { p.confirmDelete(row.ID) }
}

func parseAge(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func sortTitle(key state.SortKey, current state.Sort) string {
	title := strings.ToUpper(string(key[:1])) + string(key[1:])
	if current.Key != key {
		return title
	}
	if current.Direction == state.Descending {
		return title + " ↓"
	}
	return title + " ↑"
}

