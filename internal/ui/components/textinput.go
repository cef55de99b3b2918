package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/shindan/internal/ui/theme"
)

// TextInput wraps bubbles/textinput. With LettersOnly set, any printable
// key that is not an ASCII letter is dropped and letters are upper-cased.
type TextInput struct {
	Model       textinput.Model
	LettersOnly bool
	errMsg      string
}

// NewTextInput creates a new styled text input.
func NewTextInput(placeholder string, lettersOnly bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()

	return TextInput{
		Model:       ti,
		LettersOnly: lettersOnly,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.LettersOnly {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok && len(kmsg.Text) == 1 {
			c := kmsg.Text[0]
			if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
				return t, nil
			}
			up := strings.ToUpper(kmsg.Text)
			kmsg.Text = up
			kmsg.Code = rune(up[0])
			msg = kmsg
		}
	}
	t.errMsg = ""

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input and any validation error below it.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.errMsg != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+t.errMsg)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// SetError shows msg until the next edit.
func (t *TextInput) SetError(msg string) {
	t.errMsg = msg
}

// Reset clears the value and error.
func (t *TextInput) Reset() {
	t.Model.Reset()
	t.errMsg = ""
}
