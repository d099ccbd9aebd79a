package contact

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// maxInput bounds a field's buffer; validation reports lengths, this only stops runaway pastes
const maxInput = 2000

// Field holds the editable text of one form input
type Field struct {
	Label     string
	Multiline bool
	Text      []rune
	Cursor    int // Position in runes
	Scroll    int // Horizontal scroll offset for single-line fields
}

// NewField creates an empty field
func NewField(label string, multiline bool) *Field {
	return &Field{Label: label, Multiline: multiline}
}

// Value returns the current text
func (f *Field) Value() string {
	return string(f.Text)
}

// SetValue replaces text and moves cursor to end
func (f *Field) SetValue(s string) {
	f.Text = []rune(s)
	if len(f.Text) > maxInput {
		f.Text = f.Text[:maxInput]
	}
	f.Cursor = len(f.Text)
	f.Scroll = 0
}

// Clear empties the field
func (f *Field) Clear() {
	f.Text = f.Text[:0]
	f.Cursor = 0
	f.Scroll = 0
}

// --- Editing ---

// Insert adds a rune at cursor position
func (f *Field) Insert(r rune) bool {
	if len(f.Text) >= maxInput {
		return false
	}
	if r == '\n' && !f.Multiline {
		return false
	}
	f.Text = append(f.Text, 0)
	copy(f.Text[f.Cursor+1:], f.Text[f.Cursor:])
	f.Text[f.Cursor] = r
	f.Cursor++
	return true
}

// DeleteBackward removes the rune before cursor
func (f *Field) DeleteBackward() bool {
	if f.Cursor == 0 {
		return false
	}
	f.Text = append(f.Text[:f.Cursor-1], f.Text[f.Cursor:]...)
	f.Cursor--
	return true
}

// DeleteForward removes the rune at cursor
func (f *Field) DeleteForward() bool {
	if f.Cursor >= len(f.Text) {
		return false
	}
	f.Text = append(f.Text[:f.Cursor], f.Text[f.Cursor+1:]...)
	return true
}

// DeleteWordBackward removes the word before cursor
func (f *Field) DeleteWordBackward() bool {
	if f.Cursor == 0 {
		return false
	}
	end := f.Cursor
	for end > 0 && !isWordChar(f.Text[end-1]) {
		end--
	}
	start := end
	for start > 0 && isWordChar(f.Text[start-1]) {
		start--
	}
	f.Text = append(f.Text[:start], f.Text[f.Cursor:]...)
	f.Cursor = start
	return true
}

// DeleteToStart removes from start to cursor
func (f *Field) DeleteToStart() bool {
	if f.Cursor == 0 {
		return false
	}
	f.Text = append(f.Text[:0], f.Text[f.Cursor:]...)
	f.Cursor = 0
	f.Scroll = 0
	return true
}

// --- Movement ---

func (f *Field) moveLeft() {
	if f.Cursor > 0 {
		f.Cursor--
	}
}

func (f *Field) moveRight() {
	if f.Cursor < len(f.Text) {
		f.Cursor++
	}
}

// AdjustScroll keeps the cursor inside a viewport of width w
func (f *Field) AdjustScroll(w int) {
	if w <= 0 {
		return
	}
	if f.Cursor < f.Scroll {
		f.Scroll = f.Cursor
	}
	if f.Cursor >= f.Scroll+w {
		f.Scroll = f.Cursor - w + 1
	}
	if f.Scroll < 0 {
		f.Scroll = 0
	}
}

// HandleKey applies an editing key, returns true if the field consumed it
func (f *Field) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		f.moveLeft()
		return true
	case tcell.KeyRight:
		f.moveRight()
		return true
	case tcell.KeyHome, tcell.KeyCtrlA:
		f.Cursor = 0
		return true
	case tcell.KeyEnd, tcell.KeyCtrlE:
		f.Cursor = len(f.Text)
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return f.DeleteWordBackward()
		}
		return f.DeleteBackward()
	case tcell.KeyDelete:
		return f.DeleteForward()
	case tcell.KeyCtrlW:
		return f.DeleteWordBackward()
	case tcell.KeyCtrlU:
		return f.DeleteToStart()
	case tcell.KeyEnter:
		if f.Multiline && ev.Modifiers()&tcell.ModAlt != 0 {
			return f.Insert('\n')
		}
	case tcell.KeyRune:
		if r := ev.Rune(); unicode.IsPrint(r) {
			return f.Insert(r)
		}
	}
	return false
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
