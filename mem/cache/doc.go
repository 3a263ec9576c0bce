// Package cache provides cache-line replacement policies and the victim
// finders that cache controllers use to choose which block to evict.
//
// The main policy is SRRIP with Hit Priority. It tracks a re-reference
// prediction value for every cache line. New lines are inserted with a long
// predicted re-reference interval and are promoted to an immediate one on a
// hit, so that lines that are only touched once (for example, by a scan) are
// evicted before lines that are reused.
//
// Policies track lines by slot IDs and never see tags or data. The cache
// controller reports hits, fills and evictions and asks the policy to rank a
// set of candidate slots when it needs a victim.
package cache
