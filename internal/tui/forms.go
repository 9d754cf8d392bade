// internal/tui/forms.go
package tui

import (
	"math"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"prodview/internal/catalog"
	"prodview/internal/remote"
)

// form is the edit or create modal's input state. The draft lives here
// until save; cancel throws it away, a failed save keeps it for retry.
type form struct {
	caption string
	labels  []string
	inputs  []textinput.Model
	focus   int
	errMsg  string
}

func newInput(placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 128
	in.SetValue(value)
	return in
}

func newEditForm(p catalog.Product) form {
	f := form{
		caption: "Edit product",
		labels:  []string{"Title", "Price", "Description"},
		inputs: []textinput.Model{
			newInput("title", p.Title),
			newInput("price", strconv.FormatFloat(p.Price, 'f', -1, 64)),
			newInput("description", p.Description),
		},
	}
	f.inputs[0].Focus()
	return f
}

func newCreateForm() form {
	f := form{
		caption: "New product",
		labels:  []string{"Title", "Price", "Description", "Category ID", "Image URL"},
		inputs: []textinput.Model{
			newInput("title", ""),
			newInput("price", ""),
			newInput("description", ""),
			newInput("category id", "1"),
			newInput("image url (optional)", ""),
		},
	}
	f.inputs[0].Focus()
	return f
}

func (f *form) cycle(back bool) {
	f.inputs[f.focus].Blur()
	if back {
		f.focus--
		if f.focus < 0 {
			f.focus = len(f.inputs) - 1
		}
	} else {
		f.focus = (f.focus + 1) % len(f.inputs)
	}
	f.inputs[f.focus].Focus()
}

func (f form) update(msg tea.KeyMsg) (form, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f form) editDraft(id int64) remote.EditDraft {
	return remote.EditDraft{
		TargetID:    id,
		Title:       f.inputs[0].Value(),
		Price:       parsePrice(f.inputs[1].Value()),
		Description: f.inputs[2].Value(),
	}
}

func (f form) createDraft() remote.CreateDraft {
	return remote.CreateDraft{
		Title:       f.inputs[0].Value(),
		Price:       parsePrice(f.inputs[1].Value()),
		Description: f.inputs[2].Value(),
		CategoryID:  parseCategory(f.inputs[3].Value()),
		ImageURL:    f.inputs[4].Value(),
	}
}

// parsePrice maps unparseable input to NaN so the controller's price
// validation produces the one canonical message.
func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseCategory(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
