package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background       tcell.Color
	Foreground       tcell.Color
	TreeBg           tcell.Color
	TreeFg           tcell.Color
	TreeCurrentFg    tcell.Color
	HiddenFg         tcell.Color
	SelectionBg      tcell.Color
	SelectionFg      tcell.Color
	InactiveSelectBg tcell.Color
	InactiveSelectFg tcell.Color
	DirectoryFg      tcell.Color
	FileFg           tcell.Color
	ColumnFg         tcell.Color
	HeaderBg         tcell.Color
	HeaderFg         tcell.Color
	FooterBg         tcell.Color
	FooterFg         tcell.Color
	ErrorFg          tcell.Color
	PromptBg         tcell.Color
	PromptFg         tcell.Color
	YankFlashBg      tcell.Color
	YankFlashFg      tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:       tcell.ColorDefault,
		Foreground:       tcell.ColorDefault,
		TreeBg:           tcell.ColorDefault,
		TreeFg:           tcell.ColorDefault,
		TreeCurrentFg:    tcell.Color33,
		HiddenFg:         tcell.ColorLightSlateGray,
		SelectionBg:      tcell.Color33,
		SelectionFg:      tcell.ColorWhite,
		InactiveSelectBg: tcell.Color238,
		InactiveSelectFg: tcell.ColorWhite,
		DirectoryFg:      tcell.Color33,
		FileFg:           tcell.ColorDefault,
		ColumnFg:         tcell.Color245,
		HeaderBg:         tcell.ColorDefault,
		HeaderFg:         tcell.ColorDefault,
		FooterBg:         tcell.ColorDefault,
		FooterFg:         tcell.ColorDefault,
		ErrorFg:          tcell.ColorRed,
		PromptBg:         tcell.Color236,
		PromptFg:         tcell.ColorWhite,
		YankFlashBg:      tcell.ColorGreen,
		YankFlashFg:      tcell.ColorBlack,
	}
}
