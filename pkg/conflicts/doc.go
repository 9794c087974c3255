// Package conflicts implements conflict detection, reporting, and forced
// resolution for dotstow deployments.
//
// The detector walks a pack's file tree and, for every file or directory
// the pack would place under the target root, decides whether something
// already at the target path would block or be overwritten by linking.
// Paths that already link correctly into the pack are not conflicts, and
// a conflicting ancestor symlink supersedes anything beneath it.
//
// Detection is a pure read-only scan. The reporter aggregates detector
// output across packs into a grouped, human-readable report. The resolver
// deletes the filesystem state conflicts describe, and only when
// explicitly forced.
package conflicts
