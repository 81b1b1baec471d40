// Package domain contains the core domain entities of the interface
// generator: periodic atomic structures, mismatch metrics, and the candidate
// records produced by a generation run. These types represent the materials
// concepts and are intentionally free of infrastructure concerns so they can
// be shared across packages. All transformations return new values; no
// entity is mutated after creation.
package domain
