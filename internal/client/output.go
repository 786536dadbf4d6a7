package client

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	success   = color.New(color.FgGreen)
	failure   = color.New(color.FgRed)
	highlight = color.New(color.FgCyan)
	muted     = color.New(color.Faint)
)

func printSuccess(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, "%s %s\n", success.Sprint("✓"), fmt.Sprintf(format, a...))
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", failure.Sprint("✗"), failure.Sprint(err.Error()))
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
