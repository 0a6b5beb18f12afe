package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Detail is one key-value line in a header or result box.
type Detail struct {
	Key   string
	Value string
}

// Printer prints styled command output to a writer.
// With Plain set it writes the same content without borders or color,
// which is what pipes and tests get.
type Printer struct {
	out   io.Writer
	width int
	Plain bool
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
		Plain: w != os.Stdout || !IsTerminal(),
	}
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title string, params ...Detail) {
	if p.Plain {
		p.Println(strings.ToUpper(title))
		for _, d := range params {
			p.Println(fmt.Sprintf("  %s: %s", d.Key, d.Value))
		}
		return
	}
	p.Println(RenderHeader(title, params, p.width))
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Detail) {
	if p.Plain {
		p.Println(SuccessMarker + " " + title)
		for _, d := range details {
			p.Println(fmt.Sprintf("  %s: %s", d.Key, d.Value))
		}
		return
	}
	p.Println(RenderSuccessBox(title, details, p.width))
}

// PrintError prints an error result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting []string) {
	if p.Plain {
		p.Println(FailureMarker + " " + title)
		if err != nil {
			p.Println("  Error: " + err.Error())
		}
		for _, tip := range troubleshooting {
			p.Println("  - " + tip)
		}
		return
	}
	p.Println(RenderErrorBox(title, err, troubleshooting, p.width))
}

// PrintDebugLog prints rendered debug log lines, newest first.
func (p *Printer) PrintDebugLog(lines []string) {
	if len(lines) == 0 {
		return
	}
	p.Println(DebugTitleStyle.Render("Debug log:"))
	for _, line := range lines {
		p.Println("  " + DebugLineStyle.Render(line))
	}
}

// RenderHeader renders a command header box
func RenderHeader(title string, params []Detail, width int) string {
	titleLine := HeaderTitleStyle.Render(strings.ToUpper(title))

	if len(params) == 0 {
		return HeaderBorderStyle(width).Render(titleLine)
	}

	var paramLines []string
	for _, d := range params {
		keyStyled := HeaderParamKeyStyle.Render(d.Key + ":")
		valueStyled := HeaderParamValueStyle.Render(d.Value)
		paramLines = append(paramLines, keyStyled+" "+valueStyled)
	}

	dividerWidth := width - 6
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := RenderHorizontalDivider(dividerWidth, "─")

	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, divider, strings.Join(paramLines, "\n"))
	return HeaderBorderStyle(width).Render(content)
}

// RenderSuccessBox renders a success result box
func RenderSuccessBox(title string, details []Detail, width int) string {
	lines := []string{
		"",
		SuccessTitleStyle.Render("   " + SuccessMarker + "  SUCCESS  ─  " + title),
		"",
	}

	for _, d := range details {
		keyStyled := ResultKeyStyle.Render("   " + d.Key + ":")
		valueStyled := ResultValueStyle.Render(d.Value)
		lines = append(lines, keyStyled+" "+valueStyled)
	}
	lines = append(lines, "")

	return SuccessBoxStyle(width).Render(strings.Join(lines, "\n"))
}

// RenderErrorBox renders an error result box with troubleshooting
func RenderErrorBox(title string, err error, troubleshooting []string, width int) string {
	lines := []string{
		"",
		ErrorTitleStyle.Render("   " + FailureMarker + "  FAILED  ─  " + title),
		"",
	}

	if err != nil {
		lines = append(lines, ErrorMessageStyle.Render("   Error: "+err.Error()), "")
	}

	if len(troubleshooting) > 0 {
		troubleLines := []string{TroubleshootingTitleStyle.Render("Troubleshooting:"), ""}
		for _, tip := range troubleshooting {
			troubleLines = append(troubleLines, TroubleshootingItemStyle.Render("  • "+tip))
		}
		lines = append(lines, TroubleshootingBoxStyle(width).MarginLeft(3).Render(strings.Join(troubleLines, "\n")), "")
	}

	return ErrorBoxStyle(width).Render(strings.Join(lines, "\n"))
}
