package ui

// Theme holds the colors widgets draw with.
type Theme struct {
	Text        Color
	Placeholder Color
	Primary     Color
	Track       Color
	Field       Color
	Border      Color
	Focus       Color
}

// DefaultTheme is a light theme.
func DefaultTheme() Theme {
	return Theme{
		Text:        RGB(0.1, 0.1, 0.1),
		Placeholder: RGB(0.55, 0.55, 0.55),
		Primary:     RGB(0.2, 0.45, 0.9),
		Track:       RGB(0.8, 0.8, 0.8),
		Field:       White,
		Border:      RGB(0.7, 0.7, 0.7),
		Focus:       RGB(0.2, 0.45, 0.9),
	}
}
