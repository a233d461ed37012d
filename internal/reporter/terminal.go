package reporter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ethanolivertroy/dep-check/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hintStyle   = lipgloss.NewStyle().Italic(true)
)

// TerminalReporter outputs verdicts in a human-readable terminal format
type TerminalReporter struct{}

// Report generates terminal output for the given verdicts
func (r *TerminalReporter) Report(verdicts []models.Verdict) ([]byte, error) {
	failed := countUnsatisfied(verdicts)

	var sb strings.Builder

	if failed == 0 {
		sb.WriteString(okStyle.Render("All declared dependencies are satisfied."))
		sb.WriteString("\n")
		writeSatisfied(&sb, verdicts)
		return []byte(sb.String()), nil
	}

	sb.WriteString("\n")
	sb.WriteString(headerStyle.Render("UNSATISFIED DEPENDENCIES"))
	sb.WriteString("\n" + strings.Repeat("=", 60) + "\n\n")
	sb.WriteString(fmt.Sprintf("Found %d unsatisfied dependencies\n\n", failed))

	// Group by ecosystem, keeping first-seen order
	var order []models.Ecosystem
	byEco := make(map[models.Ecosystem][]models.Verdict)
	for _, v := range verdicts {
		if v.Satisfied {
			continue
		}
		if _, ok := byEco[v.Ecosystem]; !ok {
			order = append(order, v.Ecosystem)
		}
		byEco[v.Ecosystem] = append(byEco[v.Ecosystem], v)
	}

	for _, eco := range order {
		sb.WriteString(fmt.Sprintf("Missing %s packages:\n", eco))
		for _, v := range byEco[eco] {
			sb.WriteString(fmt.Sprintf("  %s %s\n", failStyle.Render("✗"), v.Name))
			sb.WriteString(fmt.Sprintf("    Required: %s\n", v.Specifier.Raw))
			sb.WriteString(fmt.Sprintf("    Installed: %s\n", v.Installed.VersionOrAbsent()))
			if v.Reason != "" {
				sb.WriteString(dimStyle.Render("    "+v.Reason) + "\n")
			}
		}
		sb.WriteString("\n")
		sb.WriteString(hintStyle.Render(installHint(eco)))
		sb.WriteString("\n" + strings.Repeat("-", 60) + "\n")
	}

	writeSatisfied(&sb, verdicts)

	return []byte(sb.String()), nil
}

func writeSatisfied(sb *strings.Builder, verdicts []models.Verdict) {
	for _, v := range verdicts {
		if !v.Satisfied {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s %s %s (%s)\n", okStyle.Render("✓"), v.Ecosystem, v.Name, v.Specifier.Raw))
	}
}

// installHint suggests the command that would fix an ecosystem
func installHint(eco models.Ecosystem) string {
	switch eco {
	case models.EcosystemNpm:
		return "Run `npm install` to install missing dependencies."
	case models.EcosystemBower:
		return "Run `bower install` to install missing dependencies."
	case models.EcosystemGo:
		return "Run `go mod vendor` to refresh vendored modules."
	case models.EcosystemPyPI:
		return "Run `pip install -r requirements.txt` (or your project's installer) inside the virtualenv."
	default:
		return "Install the missing dependencies and try again."
	}
}
