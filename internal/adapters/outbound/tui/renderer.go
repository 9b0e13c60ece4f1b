package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/checkdk/checkdk/internal/domain"
)

// ── warm terminal palette ──
var (
	accent  = lipgloss.Color("#06B6D4") // cyan
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber
	infoCol = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	criticalStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoStyle     = lipgloss.NewStyle().Foreground(infoCol)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	fixStyle      = lipgloss.NewStyle().Foreground(accent)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderBanner returns the startup banner.
func RenderBanner(version string) string {
	return headerStyle.Render("checkdk") + " " + dimStyle.Render("v"+version) + "\n" +
		dimStyle.Render("Predict. Diagnose. Fix – Before You Waste Time.") + "\n"
}

// RenderResult formats a full analysis result: issues grouped by severity,
// each with its paired fix, then a summary box.
func RenderResult(result *domain.AnalysisResult) string {
	var b strings.Builder

	if len(result.Issues) == 0 {
		b.WriteString(boxStyle.Render(
			passStyle.Render("✓ No issues found!") + "\n" +
				dimStyle.Render("Your configuration looks good.")))
		b.WriteString("\n")
		if result.CommitHash != "" {
			b.WriteString(faintStyle.Render("commit " + shortHash(result.CommitHash)))
			b.WriteString("\n")
		}
		return b.String()
	}

	renderGroup(&b, result, domain.SeverityCritical, criticalStyle.Render("✗ Critical Issues:"))
	renderGroup(&b, result, domain.SeverityWarning, warnStyle.Render("⚠ Warnings:"))
	renderGroup(&b, result, domain.SeverityInfo, infoStyle.Render("ℹ Info:"))

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")
	b.WriteString(renderSummary(result))
	b.WriteString("\n")
	return b.String()
}

func renderGroup(b *strings.Builder, result *domain.AnalysisResult, severity domain.Severity, heading string) {
	first := true
	n := 0
	for i, issue := range result.Issues {
		if issue.Severity != severity {
			continue
		}
		if first {
			b.WriteString("\n" + heading + "\n")
			first = false
		}
		n++
		b.WriteString(fmt.Sprintf("\n%s %s\n", titleStyle.Render(fmt.Sprintf("%d.", n)), issue.Message))
		if issue.ServiceName != "" {
			b.WriteString(dimStyle.Render(fmt.Sprintf("   Service: %s", issue.ServiceName)) + "\n")
		}
		if issue.FilePath != "" {
			b.WriteString(faintStyle.Render(fmt.Sprintf("   File: %s", issue.FilePath)) + "\n")
		}
		if i < len(result.Fixes) {
			renderFix(b, result.Fixes[i])
		}
	}
}

func renderFix(b *strings.Builder, fix domain.Fix) {
	b.WriteString("\n   " + passStyle.Render("💡 Suggested Fix: ") + fix.Description + "\n")
	if fix.Explanation != "" {
		b.WriteString("   " + dimStyle.Render(fix.Explanation) + "\n")
	}
	if fix.RootCause != "" {
		b.WriteString("   " + dimStyle.Render("Root cause: "+fix.RootCause) + "\n")
	}
	for _, step := range fix.Steps {
		b.WriteString("   " + fixStyle.Render(step) + "\n")
	}
}

func renderSummary(result *domain.AnalysisResult) string {
	var rows []string
	if n := result.CountBySeverity(domain.SeverityCritical); n > 0 {
		rows = append(rows, criticalStyle.Render("Critical:")+fmt.Sprintf(" %d", n))
	}
	if n := result.CountBySeverity(domain.SeverityWarning); n > 0 {
		rows = append(rows, warnStyle.Render("Warnings:")+fmt.Sprintf(" %d", n))
	}
	if n := result.CountBySeverity(domain.SeverityInfo); n > 0 {
		rows = append(rows, infoStyle.Render("Info:")+fmt.Sprintf(" %d", n))
	}
	if result.CommitHash != "" {
		rows = append(rows, faintStyle.Render("commit "+shortHash(result.CommitHash)))
	}
	return boxStyle.Render(titleStyle.Render("Summary") + "\n" + strings.Join(rows, "\n"))
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
