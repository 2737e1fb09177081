// Package agent implements the memory agent orchestrating one turn at a
// time: classify against a profile snapshot, apply the proposed mutation
// atomically, extend the provenance chain and acknowledge the caller.
//
// Turns for one subject are processed strictly sequentially under a
// per-subject lock because every appended record's previous-hash depends on
// the record before it. Distinct subjects share no state and process fully in
// parallel. No call here blocks on I/O except an optionally configured chain
// archiver, whose failures are logged and never affect correctness.
package agent
