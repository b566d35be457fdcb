package raft

import "errors"

// errLogMismatch signals that AppendEntries' prevLogIndex/prevLogTerm
// check failed; the caller (step_follower.go) turns this into a
// rejected AppendEntriesResponse rather than propagating it further.
var errLogMismatch = errors.New("raft: log mismatch at prevLogIndex")
