// Package history provides SQLite-based storage of past page audits.
//
// Every run of the CLI appends one row per audited page to a single database
// file under the XDG data directory. Rows keep the full agent results as
// JSON next to the overall score and status, so a page's score can be
// compared across runs without re-auditing it.
//
// Each row also carries a SHA3-256 fingerprint of the audited markup. Two
// runs with equal fingerprints audited identical HTML, so a score change
// between them can only come from a rule change.
//
// SQLite is accessed through modernc.org/sqlite, which needs no cgo.
package history
