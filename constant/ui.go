package constant

// Key Highlight Colors (24-bit RGB)
const (
	SelectedColor = 0x0099FF
	CorrectColor  = 0x34C759
	WrongColor    = 0xFF6B6B
)

// Keyboard Cell Geometry
const (
	WhiteKeyWidth  = 4 // columns per white key, last column is the gap
	WhiteKeyHeight = 10
	BlackKeyWidth  = 3
	BlackKeyHeight = 6
)

// ResizeDebounceMs delays re-layout until resize events settle
const ResizeDebounceMs = 150
