// Package services defines shared utilities consumed by the organizer and the
// command wiring.
//
// Key responsibilities:
//   - Context helpers that stamp the run identifier for logging.
//   - Structured error markers plus the Wrap helper that separate transient
//     move failures (skip and retry next pass) from fatal filesystem errors.
package services
