package conflicts

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/style"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/rs/zerolog"
)

// Checker aggregates conflict detection across all requested packs.
type Checker struct {
	baseDir    string
	targetRoot string
	detector   *Detector
	logger     zerolog.Logger
}

// NewChecker creates a checker rooted at baseDir (the dotfiles source)
// targeting targetRoot.
func NewChecker(baseDir, targetRoot string) *Checker {
	return &Checker{
		baseDir:    baseDir,
		targetRoot: targetRoot,
		detector:   NewDetector(targetRoot),
		logger:     logging.GetLogger("conflicts.checker"),
	}
}

// CheckAll runs detection for every named pack and returns the flattened
// record list, tagged with pack names and grouped in first-seen pack
// order. Packs without a directory are skipped. The second return is the
// rendered report, empty when no conflicts exist.
func (c *Checker) CheckAll(packNames []string) ([]types.ConflictRecord, string) {
	var all []types.ConflictRecord
	for _, name := range packNames {
		pack := types.Pack{Name: name, Path: filepath.Join(c.baseDir, name)}
		if !pack.Exists() {
			continue
		}
		for _, rec := range c.detector.Detect(pack.Path) {
			rec.Package = name
			all = append(all, rec)
		}
	}

	c.logger.Debug().Int("conflicts", len(all)).Strs("packs", packNames).Msg("conflict check complete")

	if len(all) == 0 {
		return nil, ""
	}
	return all, RenderReport(all)
}

// RenderReport renders the grouped human-readable conflict report with
// remediation guidance.
func RenderReport(records []types.ConflictRecord) string {
	if len(records) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(style.Render("[error]Conflicts detected.[/error] The following paths block deployment:\n"))

	var packOrder []string
	grouped := make(map[string][]types.ConflictRecord)
	for _, rec := range records {
		if _, ok := grouped[rec.Package]; !ok {
			packOrder = append(packOrder, rec.Package)
		}
		grouped[rec.Package] = append(grouped[rec.Package], rec)
	}

	for _, pack := range packOrder {
		b.WriteString("\n")
		b.WriteString(style.Render(fmt.Sprintf("[title]pack %s[/title]\n", pack)))
		for _, rec := range grouped[pack] {
			switch rec.Kind {
			case types.ConflictSymlink:
				b.WriteString(style.Render(fmt.Sprintf(
					"  [path]%s[/path] -> [muted]%s[/muted] (symlink not managed by dotstow)\n",
					rec.Path, rec.LinkTarget)))
			default:
				b.WriteString(style.Render(fmt.Sprintf(
					"  [path]%s[/path] (existing file or directory would be overwritten)\n",
					rec.Path)))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(style.Render("[bold]To resolve, either:[/bold]\n"))
	b.WriteString(style.Render("  1. Re-run with [code]--force[/code] to remove the conflicting paths (a backup is taken first)\n"))
	b.WriteString(style.Render("  2. Re-run with [code]--adopt[/code] to absorb the existing files into the packs\n"))
	b.WriteString(style.Render("  3. Remove the paths manually:\n"))
	for _, rec := range records {
		b.WriteString(style.Render(fmt.Sprintf("       [code]rm -rf '%s'[/code]\n", rec.Path)))
	}

	return b.String()
}
