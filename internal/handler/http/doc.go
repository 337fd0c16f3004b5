// Package http implements the HTTP transport of the sync server.
//
// It wires the chi router, the sync and health handlers and the middleware
// chain. Trace ids, access logging, tracing, compression, rate limiting,
// body size limits and secret key authentication are handled here before a
// request reaches the service layer.
package http
