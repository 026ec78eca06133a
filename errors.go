package gui

import "errors"

var (
	// ErrNoFonts is returned by FontAtlas.Bake when no font was added.
	ErrNoFonts = errors.New("gui: font atlas has no fonts")
	// ErrFontNotFound is returned for an unknown font index.
	ErrFontNotFound = errors.New("gui: font not found")
	// ErrInvalidOversample is returned for oversampling factors outside 1..8.
	ErrInvalidOversample = errors.New("gui: oversample factor out of range")
	// ErrInvalidFontSize is returned for a non-positive font size.
	ErrInvalidFontSize = errors.New("gui: font size must be positive")
	// ErrAtlasTooLarge is returned when the glyphs do not fit the largest atlas.
	ErrAtlasTooLarge = errors.New("gui: font atlas too large")
	// ErrAtlasNotBaked is returned by FontAtlas.End before Bake.
	ErrAtlasNotBaked = errors.New("gui: font atlas not baked")
	// ErrAtlasFinished is returned when adding fonts after End.
	ErrAtlasFinished = errors.New("gui: font atlas already finished")

	// ErrVertexBufferFull is returned by Convert when the vertex budget is exhausted.
	ErrVertexBufferFull = errors.New("gui: vertex buffer full")
	// ErrElementBufferFull is returned by Convert when the element budget is exhausted.
	ErrElementBufferFull = errors.New("gui: element buffer full")
	// ErrInvalidConfig is returned by Convert for an unusable ConvertConfig.
	ErrInvalidConfig = errors.New("gui: invalid convert config")
)
