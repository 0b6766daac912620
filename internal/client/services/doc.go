// Package services contains the application services of the admin console:
// one per backend resource, plus the locally persisted preferences.
//
// List methods have the listing.FetchFunc shape so they can be bound to a
// listing.Controller directly.
package services
