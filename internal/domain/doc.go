// Package domain holds the in-memory model for cross-referencing Gene
// Ontology enrichment results over a partially specified Boolean network:
// a Collection of Instances (one per network color), each owning the
// Attractors classified for that color, each owning the significance-filtered
// Terms returned by the enrichment source.
//
// The structure is built once by the pipeline and queried read-only
// afterwards. Aggregation methods recompute their result from the attractor
// and instance lists on every call; nothing is cached.
package domain
