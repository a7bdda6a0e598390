// Package cache maintains the local context snapshot: who the user is,
// which organizations they belong to, and which scouts they have access
// to. The snapshot is assembled by merging several partially-overlapping
// upstream responses into one de-duplicated entity graph and persisted to
// a single JSON file, so ordinary lookups never touch the network.
//
// A refresh is best-effort by contract: each upstream fetch contributes
// what it can, a failed step is recorded in the refresh report and skipped,
// and the snapshot is built from whatever succeeded.
package cache
