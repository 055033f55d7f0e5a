// Package organizer runs the loop that relocates record files from the flat
// staging directory into the sharded destination tree.
//
// Each pass lists the staging directory, skips names already moved during this
// run, parses eligible names with package records, ensures the shard directory
// exists, and moves the file there. Files still held by their writer or gone
// between listing and move are logged and retried on a later pass. Any other
// filesystem failure stops the loop.
//
// The loop never finishes on its own. It stops when its context is cancelled,
// which the command wires to SIGINT and SIGTERM.
package organizer
