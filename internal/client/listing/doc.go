// Package listing implements the paginated list controller shared by every
// list view of the console.
//
// A Controller owns the query of one listing (page, page size, search text,
// status filter and optional extra dependencies) and the last result (rows,
// total page count, loading flag). Every setter that changes the query
// schedules exactly one fetch; nothing is debounced, so each keystroke of a
// search issues its own request.
//
// Fetches run concurrently and are never cancelled when the query changes.
// Each carries a generation number, and the ApplyPolicy decides what happens
// when results settle out of order:
//
//   - LastSettledWins (default): whichever response settles last determines
//     rows and totalPages, even if it was issued first.
//   - LatestIssuedOnly: results of superseded generations are dropped.
//
// A failed fetch never propagates to the caller: it is logged, rows become
// empty, totalPages keeps its previous value and LastError reports it.
package listing
