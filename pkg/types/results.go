package types

import "fmt"

// DeploymentResult aggregates the outcome of one deployPackages run.
type DeploymentResult struct {
	// Stowed lists packages whose stow invocation succeeded.
	Stowed []string

	// Missing lists requested packages with no directory under the base dir.
	Missing []string

	// Failed is the name of the package whose stow invocation failed,
	// empty when everything succeeded. Deployment stops at the first
	// failure, so there is at most one.
	Failed string

	// FailedOutput holds the filtered diagnostic output of the failing
	// stow invocation.
	FailedOutput string
}

// OK reports whether the run completed without a stow failure.
func (r *DeploymentResult) OK() bool {
	return r.Failed == ""
}

// BackupResult aggregates the outcome of one createBackup run.
type BackupResult struct {
	// Dir is the timestamped backup directory, empty when nothing needed
	// backing up or the backup was skipped.
	Dir string

	// BackedUp counts paths successfully copied.
	BackedUp int

	// Failed counts paths whose copy failed. Failures never stop the
	// remaining copies from being attempted.
	Failed int
}

// VerifyIssue describes one expected link that did not verify.
type VerifyIssue struct {
	Path   string
	Reason string
}

// VerifyReport summarizes a post-deployment verification pass. It is
// purely informational and never escalates to a fatal error.
type VerifyReport struct {
	Verified int
	Issues   []VerifyIssue
}

// Summary returns the one-line count header for the report.
func (r *VerifyReport) Summary() string {
	return fmt.Sprintf("%d links verified, %d issues", r.Verified, len(r.Issues))
}

// OK reports whether every expected link verified.
func (r *VerifyReport) OK() bool {
	return len(r.Issues) == 0
}
