// Package connection executes OAuth signed HTTP calls against the marketplace
// and returns the raw status code and body.
//
// A Connection performs exactly one attempt per Fetch and never interprets the
// status code; that is left to the caller.
package connection
