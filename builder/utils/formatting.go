package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatBytes renders a size as "12,345 bytes (12.1 KB)".
func FormatBytes(n int64) string {
	switch {
	case n >= 1024*1024:
		return printer.Sprintf("%d bytes (%.1f MB)", n, float64(n)/(1024*1024))
	case n >= 1024:
		return printer.Sprintf("%d bytes (%.1f KB)", n, float64(n)/1024)
	default:
		return printer.Sprintf("%d bytes", n)
	}
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// SavingsPercent is how much smaller part is than whole, in percent.
func SavingsPercent(whole, part int64) float64 {
	if whole <= 0 {
		return 0
	}
	return (1 - float64(part)/float64(whole)) * 100
}
