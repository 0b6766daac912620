// Package cli provides the interactive Daily Hustle admin console.
//
// It wires configuration, the local store, the API client, the session
// manager and the entity services into a REPL. Typical flow: restore the
// session from the stored token or log in with email, password and a
// one-time code, then open a list (workers, employers, tasks, submissions,
// withdrawals, kyc, tickets), page and filter it, and act on its records.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
