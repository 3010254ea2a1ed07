package log

import "github.com/fatih/color"

var levelColors = map[LogLevel]*color.Color{
	Debug: color.New(color.FgBlue),
	Info:  color.New(color.FgGreen),
	Warn:  color.New(color.FgYellow),
	Error: color.New(color.FgRed),
	Fatal: color.New(color.FgMagenta, color.Bold),
}

func init() {
	// Whether to color is decided per logger, see Logger.NoColor
	for _, c := range levelColors {
		c.EnableColor()
	}
}

// Colorize wraps text in the terminal color assigned to level.
func Colorize(l LogLevel, text string) string {
	c, exists := levelColors[l]
	if !exists {
		return text
	}

	return c.Sprint(text)
}
