// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the internal application services, translating HTTP concerns to task
// operations and mapping service errors onto the uniform error envelope.
package api
