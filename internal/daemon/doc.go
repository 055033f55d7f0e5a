// Package daemon runs the organizer loop under a single-instance lock.
//
// The lock is an advisory flock on a file in the log directory; a second
// daemon started against the same configuration refuses to run. The lock only
// guards against two organizers racing on the same tree. It does not
// coordinate with the producer writing into the staging directory.
package daemon
