// Package verify re-confirms, after deployment, that each expected
// symlink is present and resolves into the managed source tree. It is
// purely informational: discrepancies become warnings, never errors.
package verify

import (
	"github.com/arthur-debert/dotstow/pkg/logging"
	"github.com/arthur-debert/dotstow/pkg/paths"
	"github.com/arthur-debert/dotstow/pkg/types"
	"github.com/rs/zerolog"
)

// Issue reasons surfaced in the report.
const (
	ReasonNotManaged = "exists but not managed"
	ReasonNotFound   = "not found"
)

// Verifier checks expected links against the managed source tree.
type Verifier struct {
	sourceRoot string
	logger     zerolog.Logger
}

// New creates a verifier for the given dotfiles source root.
func New(sourceRoot string) *Verifier {
	return &Verifier{
		sourceRoot: sourceRoot,
		logger:     logging.GetLogger("verify"),
	}
}

// Verify checks each expected link path. A path counts as verified when
// it resolves, directly or via an ancestor symlink, into the source
// tree. Anything else becomes an itemized issue.
func (v *Verifier) Verify(expectedLinks []string) *types.VerifyReport {
	report := &types.VerifyReport{}
	for _, link := range expectedLinks {
		switch {
		case paths.IsStowManaged(link, v.sourceRoot):
			report.Verified++
		case paths.Exists(link):
			report.Issues = append(report.Issues, types.VerifyIssue{Path: link, Reason: ReasonNotManaged})
		default:
			report.Issues = append(report.Issues, types.VerifyIssue{Path: link, Reason: ReasonNotFound})
		}
	}
	v.logger.Debug().Int("verified", report.Verified).Int("issues", len(report.Issues)).Msg("verification complete")
	return report
}
