package gui

// Style defines the visual appearance of panels and text.
type Style struct {
	// Colors
	TextColor             uint32
	PanelColor            uint32
	PanelBorderColor      uint32
	PanelHeaderBgColor    uint32
	PanelHeaderHoverColor uint32 // Header of a movable panel under the cursor
	PanelHeaderTextColor  uint32 // 0 = use TextColor

	// Sizing
	PanelPadding  Vec2 // Inner padding of the panel body
	ItemSpacing   Vec2 // Gap between columns and rows
	HeaderPadding Vec2 // Padding around the title
	TextPadding   Vec2 // Padding inside a text widget

	// Border
	BorderSize float32
	Rounding   float32 // Corner rounding (0 = sharp corners)
}

// DefaultStyle returns the default dark theme.
func DefaultStyle() Style {
	return Style{
		TextColor:             RGBA(175, 175, 175, 255),
		PanelColor:            RGBA(45, 45, 45, 255),
		PanelBorderColor:      RGBA(65, 65, 65, 255),
		PanelHeaderBgColor:    RGBA(40, 40, 40, 255),
		PanelHeaderHoverColor: RGBA(50, 50, 50, 255),
		PanelHeaderTextColor:  0,

		PanelPadding:  Vec2{4, 4},
		ItemSpacing:   Vec2{4, 4},
		HeaderPadding: Vec2{4, 4},
		TextPadding:   Vec2{0, 0},

		BorderSize: 2,
		Rounding:   0,
	}
}

// headerTextColor resolves the title color.
func (s *Style) headerTextColor() uint32 {
	if s.PanelHeaderTextColor != 0 {
		return s.PanelHeaderTextColor
	}
	return s.TextColor
}
