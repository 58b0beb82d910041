package s5_report

import (
	"fmt"
	"io"
	"strings"
)

// ═══════════════════════════════════════════════════════════
// Text Formatting Utilities
// 보고서와 CLI 출력이 동일한 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const (
	doubleLine = "════════════════════════════════════════════════════════════════════════════════════════════════════"
	singleLine = "────────────────────────────────────────────────────────────────────────────────────────────────────"
)

// Printer writes formatted text blocks to w
type Printer struct {
	w io.Writer
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Printf writes a formatted line fragment
func (p *Printer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}

// Println writes a line
func (p *Printer) Println(args ...interface{}) {
	fmt.Fprintln(p.w, args...)
}

// DoubleSeparator prints a double-line separator
func (p *Printer) DoubleSeparator() {
	p.Println(doubleLine)
}

// Separator prints a visual separator
func (p *Printer) Separator() {
	p.Println(singleLine)
}

// Banner prints a title framed by double separators
func (p *Printer) Banner(title string) {
	p.Println()
	p.DoubleSeparator()
	p.Printf("  %s\n", title)
	p.DoubleSeparator()
	p.Println()
}

// Section prints a section heading preceded by a separator
func (p *Printer) Section(title string) {
	p.Println()
	p.Separator()
	p.Printf("%s\n\n", title)
}

// KeyValue prints a key-value pair
func (p *Printer) KeyValue(key string, value string, keyWidth int) {
	p.Printf("  %-*s %s\n", keyWidth, key+":", value)
}

// TableHeader prints a table header and its underline.
// Negative widths right-align the column.
func (p *Printer) TableHeader(columns []string, widths []int) {
	p.TableRow(columns, widths)

	total := 0
	for i, w := range widths {
		if w < 0 {
			w = -w
		}
		total += w
		if i < len(widths)-1 {
			total++ // spacing
		}
	}
	p.Println(strings.Repeat("─", total))
}

// TableRow prints a table row
func (p *Printer) TableRow(values []string, widths []int) {
	for i, val := range values {
		if widths[i] < 0 {
			p.Printf("%*s", -widths[i], val)
		} else {
			p.Printf("%-*s", widths[i], val)
		}
		if i < len(values)-1 {
			p.Printf(" ")
		}
	}
	p.Println()
}

// List prints a bulleted list
func (p *Printer) List(items []string) {
	for _, item := range items {
		p.Printf("  - %s\n", item)
	}
}

// Warning prints a warning message
func (p *Printer) Warning(message string) {
	p.Printf("⚠ %s\n", message)
}

// Success prints a success message
func (p *Printer) Success(message string) {
	p.Printf("✓ %s\n", message)
}
