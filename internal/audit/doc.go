// Package audit runs quality agents over rendered pages.
//
// A Coordinator fans one page out to every registered agent concurrently
// and joins their results into a model.PageAudit. Any agent failure fails
// the whole page; a partial PageAudit is never produced.
//
// A BatchAuditor drives the Coordinator over many pages with bounded
// concurrency using errgroup. Pages are independent: a failed page is
// recorded as a model.PageFailure and the rest of the batch carries on.
// Successful audits keep the order of the input.
package audit
