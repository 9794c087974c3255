package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders [tag]...[/tag] markup in message templates. The
// string tables in cmd keep their formatting declarative this way.
type MarkupParser struct {
	styles map[string]lipgloss.Style
}

// NewMarkupParser creates a markup parser with the default styles.
func NewMarkupParser() *MarkupParser {
	return &MarkupParser{
		styles: map[string]lipgloss.Style{
			"title":   TitleStyle,
			"success": SuccessStyle,
			"error":   ErrorStyle,
			"warning": WarningStyle,
			"muted":   MutedStyle,
			"path":    PathStyle,
			"code":    CodeStyle,
			"bold":    lipgloss.NewStyle().Bold(true),
		},
	}
}

// Render processes markup text and returns styled output. Tags are
// processed repeatedly so nested tags resolve inside out.
func (p *MarkupParser) Render(text string) string {
	result := text
	for {
		changed := false
		for tag, tagStyle := range p.styles {
			pattern := regexp.MustCompile(`\[` + tag + `\](.*?)\[/` + tag + `\]`)
			result = pattern.ReplaceAllStringFunc(result, func(match string) string {
				submatch := pattern.FindStringSubmatch(match)
				if len(submatch) != 2 {
					return match
				}
				changed = true
				return tagStyle.Render(submatch[1])
			})
		}
		if !changed {
			return result
		}
	}
}

// RenderTemplate substitutes {{var}} placeholders and then renders markup.
func (p *MarkupParser) RenderTemplate(template string, vars map[string]string) string {
	result := template
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return p.Render(result)
}

var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser.
func Render(text string) string {
	return defaultParser.Render(text)
}

// RenderTemplate is a convenience function using the default parser.
func RenderTemplate(template string, vars map[string]string) string {
	return defaultParser.RenderTemplate(template, vars)
}
