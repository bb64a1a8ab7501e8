package domain

// RenderKind is the shape of an outbound render instruction
type RenderKind string

const (
	// RenderText - plain text message
	RenderText RenderKind = "text"
	// RenderPhoto - text shown with an image, optionally with buttons
	RenderPhoto RenderKind = "photo"
	// RenderMenu - text with labeled actions grouped into rows
	RenderMenu RenderKind = "menu"
)

// Button is a labeled action
type Button struct {
	Label  string
	Action Action
}

// Render describes what to show the user, independent of chat markup.
// Error is set on renders produced by a failed transition.
type Render struct {
	Kind     RenderKind
	Text     string
	ImageURL string
	Rows     [][]Button
	Error    bool
}

// TextRender builds a plain text render
func TextRender(text string) Render {
	return Render{Kind: RenderText, Text: text}
}

// ErrorRender builds the single render emitted for a failed transition
func ErrorRender(text string) Render {
	return Render{Kind: RenderText, Text: text, Error: true}
}

// MenuRender builds a text render with button rows
func MenuRender(text string, rows [][]Button) Render {
	return Render{Kind: RenderMenu, Text: text, Rows: rows}
}

// PhotoRender builds an image render with a caption and button rows
func PhotoRender(caption, imageURL string, rows [][]Button) Render {
	return Render{Kind: RenderPhoto, Text: caption, ImageURL: imageURL, Rows: rows}
}

// ChunkButtons groups buttons into rows of at most size buttons
func ChunkButtons(buttons []Button, size int) [][]Button {
	if size <= 0 {
		size = 1
	}
	rows := make([][]Button, 0, (len(buttons)+size-1)/size)
	for start := 0; start < len(buttons); start += size {
		end := start + size
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, buttons[start:end])
	}
	return rows
}
