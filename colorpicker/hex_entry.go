package colorpicker

import (
	"fyne.io/fyne/v2/widget"
)

// HexEntry is a custom Entry widget that only accepts hexadecimal color
// input. It embeds widget.Entry to inherit all standard behavior.
type HexEntry struct {
	widget.Entry
}

// NewHexEntry creates a new instance of HexEntry.
func NewHexEntry() *HexEntry {
	entry := &HexEntry{}
	entry.ExtendBaseWidget(entry)
	entry.Validator = func(s string) error {
		if s == "" {
			return nil
		}
		_, err := ParseHex(s)
		return err
	}
	return entry
}

// TypedRune intercepts text input events.
// It filters characters to hex digits and the leading '#'.
func (e *HexEntry) TypedRune(r rune) {
	switch {
	case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F', r == '#':
		e.Entry.TypedRune(r)
	}
	// Ignore everything else.
	// Note: Shortcuts like Ctrl+V (Paste) are handled by TypedShortcut/TypedKey,
	// so arbitrary data could still be pasted. The Validator handles that case.
}
