package gui

// UserFont is the interface the Context uses to measure and draw text.
// The GUI package does not depend on any concrete font implementation;
// *Font from a baked FontAtlas satisfies it, and tests can supply their own.
type UserFont interface {
	// Height returns the line height in pixels.
	Height() float32

	// Width returns the advance width of text in pixels.
	Width(text string) float32

	// Glyph returns the rendering quad for r, relative to the top-left
	// corner of the line. The fallback glyph is returned for unknown runes.
	Glyph(r rune) (Glyph, bool)

	// Texture returns the atlas texture the glyph UVs refer to.
	Texture() Handle
}

// Glyph describes how to draw one rune from a font atlas.
type Glyph struct {
	Codepoint rune
	Advance   float32

	// Quad offsets from the pen position at the top of the line.
	X0, Y0 float32
	X1, Y1 float32

	// Texture coordinates (top-left and bottom-right)
	U0, V0 float32
	U1, V1 float32
}
