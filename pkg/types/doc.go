// Package types contains the shared data model for dotstow: conflict
// records, packages, filesystem abstraction, and per-invocation result
// aggregates. It has no dependencies on other dotstow packages so that
// every component can share these types without import cycles.
package types
