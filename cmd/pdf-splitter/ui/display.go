package ui

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
)

// Section prints a section header.
func Section(title string) {
	bold := color.New(color.Bold, color.FgCyan)
	fmt.Println()
	bold.Println(title)
	fmt.Println(strings.Repeat("─", len(title)))
}

// Info prints an informational line.
func Info(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

// Success prints a success line in green.
func Success(format string, args ...interface{}) {
	color.New(color.FgGreen).Printf(format+"\n", args...)
}

// Warn prints a warning line in yellow.
func Warn(format string, args ...interface{}) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

// Errorf prints an error line in red to stderr.
func Errorf(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(os.Stderr, format+"\n", args...)
}

// Newline prints an empty line.
func Newline() {
	fmt.Println()
}

// Table displays data in a formatted table.
func Table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(headers, "\t"))

	separator := make([]string, len(headers))
	for i := range separator {
		separator[i] = strings.Repeat("-", len(headers[i]))
	}
	fmt.Fprintln(w, strings.Join(separator, "\t"))

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	_ = w.Flush()
}

// FormatDuration renders a duration for table display.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(10 * time.Millisecond).String()
}
