// Package records parses staging filenames into destination shard records.
//
// A record name is a run of decimal digits, the literal "_lr", any suffix, and
// one of the allowed extensions (hea, dat, png). The leading digits form the
// record id; ids are bucketed by thousands into shard directories named
// "<id/1000 zero-padded to two digits>000".
//
// Matching is purely syntactic. Nothing here opens or inspects a file.
package records
