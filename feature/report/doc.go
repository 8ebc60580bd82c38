// Package report exposes the reconciliation engine over HTTP.
//
// It wraps a synchronous run of the engine for API consumers that want the
// whole report in one response instead of the incremental event stream the
// terminal surfaces use.
//
// # Components
//
//   - Service: builds the run specification from a request and drives a
//     session to completion.
//   - Handler: exposes the HTTP endpoints.
//
// # HTTP Endpoints
//
//   - GET  /api/fields : The attribute registry with its default configuration.
//   - POST /api/check  : Run a check over the submitted article titles.
package report
