package theme

// NewCatppuccinMocha creates the default Catppuccin Mocha theme.
func NewCatppuccinMocha() *Theme {
	return &Theme{
		Name:   "catppuccin-mocha",
		IsDark: true,

		Primary:   "#cba6f7", // Mauve
		Secondary: "#94e2d5", // Teal

		BgCrust:    "#11111b",
		BgBase:     "#1e1e2e",
		BgSurface0: "#313244",

		FgMuted:  "#6c7086", // Overlay0
		FgSubtle: "#a6adc8", // Subtext0
		FgBase:   "#cdd6f4", // Text
		FgBright: "#f5e0dc", // Rosewater

		Success: "#a6e3a1", // Green
		Error:   "#f38ba8", // Red

		BorderMuted:   "#313244",
		BorderDefault: "#45475a",
		BorderFocused: "#b4befe", // Lavender
	}
}
