// Package http implements the REST transport of the marketplace.
//
// Routes are wrapped by [Handler.wrap], which rate-limits the caller, runs
// the business handler and writes the uniform response envelope. Tracing,
// access logging, metrics and bearer authentication are middleware.
package http
