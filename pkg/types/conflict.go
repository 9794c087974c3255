package types

import (
	"fmt"
	"strings"
)

// ConflictKind distinguishes the two ways a target path can block linking.
type ConflictKind int

const (
	// ConflictFile means a regular file or directory occupies the target path.
	ConflictFile ConflictKind = iota

	// ConflictSymlink means a symlink at the target path resolves somewhere
	// other than into the package source tree.
	ConflictSymlink
)

// String returns the wire name of the kind, as used in the compact encoding.
func (k ConflictKind) String() string {
	switch k {
	case ConflictFile:
		return "file"
	case ConflictSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// ParseConflictKind parses the wire name of a conflict kind.
func ParseConflictKind(s string) (ConflictKind, error) {
	switch s {
	case "file":
		return ConflictFile, nil
	case "symlink":
		return ConflictSymlink, nil
	default:
		return ConflictFile, fmt.Errorf("unknown conflict kind %q", s)
	}
}

// ConflictRecord describes one target path that would block or be
// overwritten by deploying a package.
type ConflictRecord struct {
	// Kind classifies the conflict.
	Kind ConflictKind

	// Path is the absolute target path that conflicts.
	Path string

	// LinkTarget is the resolved target of the existing symlink. It is set
	// only for ConflictSymlink records and empty otherwise.
	LinkTarget string

	// Package is the name of the package that would have written to Path.
	// It is attached when aggregating conflicts across packages and empty
	// on records straight out of the detector.
	Package string
}

// NewFileConflict returns a ConflictRecord for a regular file or directory
// sitting at path.
func NewFileConflict(path string) ConflictRecord {
	return ConflictRecord{Kind: ConflictFile, Path: path}
}

// NewSymlinkConflict returns a ConflictRecord for an unmanaged symlink at
// path resolving to linkTarget.
func NewSymlinkConflict(path, linkTarget string) ConflictRecord {
	return ConflictRecord{Kind: ConflictSymlink, Path: path, LinkTarget: linkTarget}
}

// Encode renders the compact colon-delimited form used for pipeline-style
// output: "kind:path" or "kind:path:linkTarget", prefixed with "package:"
// when the record carries a package name.
func (c ConflictRecord) Encode() string {
	var b strings.Builder
	if c.Package != "" {
		b.WriteString(c.Package)
		b.WriteByte(':')
	}
	b.WriteString(c.Kind.String())
	b.WriteByte(':')
	b.WriteString(c.Path)
	if c.Kind == ConflictSymlink && c.LinkTarget != "" {
		b.WriteByte(':')
		b.WriteString(c.LinkTarget)
	}
	return b.String()
}

// ParseConflict parses the compact form produced by Encode. The kind token
// anchors the split: everything before the first recognized kind field is
// the package name, everything after it is the path. For symlink records
// the link target is the last colon-delimited field, which keeps paths
// containing colons parseable as long as the link target itself holds none.
func ParseConflict(s string) (ConflictRecord, error) {
	fields := strings.Split(s, ":")
	if len(fields) < 2 {
		return ConflictRecord{}, fmt.Errorf("malformed conflict record %q", s)
	}

	var rec ConflictRecord
	rest := fields
	if kind, err := ParseConflictKind(fields[0]); err == nil {
		rec.Kind = kind
		rest = fields[1:]
	} else {
		kind, err := ParseConflictKind(fields[1])
		if err != nil {
			return ConflictRecord{}, fmt.Errorf("malformed conflict record %q: no kind field", s)
		}
		rec.Package = fields[0]
		rec.Kind = kind
		rest = fields[2:]
	}

	if len(rest) == 0 || strings.Join(rest, ":") == "" {
		return ConflictRecord{}, fmt.Errorf("malformed conflict record %q: empty path", s)
	}

	if rec.Kind == ConflictSymlink && len(rest) > 1 {
		rec.LinkTarget = rest[len(rest)-1]
		rec.Path = strings.Join(rest[:len(rest)-1], ":")
	} else {
		rec.Path = strings.Join(rest, ":")
	}
	return rec, nil
}

// EncodeConflicts renders a slice of records one per line.
func EncodeConflicts(records []ConflictRecord) string {
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = rec.Encode()
	}
	return strings.Join(lines, "\n")
}
