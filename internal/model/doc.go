// Package model defines the core data structures used throughout pageaudit.
//
// This package contains the following main types:
//   - AuditResult: One agent's verdict for one page
//   - PageAudit: The aggregate of all agent results for one page
//   - PageInput / PageFailure / BatchResult: Batch input and outcome
//   - Summary / Report: Aggregated data consumed by report writers
//
// Models live in their own package so that agent, audit, report and history
// can share them without import cycles. Every type is serializable to JSON for
// report output and history storage.
package model
