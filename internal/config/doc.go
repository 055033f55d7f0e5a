// Package config loads, normalizes, and validates recshard configuration data.
//
// Only ambient knobs live here: the log directory, log format and level, log
// retention, the poll interval between organizer passes, and the optional
// source watcher. The staging directory, the destination root and the filename
// pattern are fixed in package records and are not configurable.
//
// Always obtain settings through this package so downstream code receives
// expanded paths and clear validation errors.
package config
