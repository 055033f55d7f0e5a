// Package main hosts the recshard CLI entrypoint and command graph.
//
// The default command runs the organizer loop that drains dat/clean into the
// sharded dat/data tree under a single-instance lock. The remaining commands
// inspect that tree, preview shard placement for record ids and scaffold a
// configuration file. Heavy lifting lives in the internal packages; commands
// here only resolve configuration and wire logging.
package main
