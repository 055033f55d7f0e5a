// Package fileutil moves files between directories the way the organizer
// needs: a same-filesystem rename when possible, a verified copy followed by
// removal of the source when the rename crosses devices, and an advisory lock
// probe that reports files still held by their writer.
package fileutil
