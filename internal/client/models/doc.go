// Package models defines the records the admin console reads from the
// backend and how each one is shown as a table row.
package models
