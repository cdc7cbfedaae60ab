// Package errs defines the error types returned to API clients.
//
// Every error a handler or service returns is eventually rendered as an
// HTTPError by the global error handler, so clients always receive the
// same JSON shape:
//
//	{ "code": "BAD_REQUEST", "message": "...", "status": 400,
//	  "override": false, "errors": [...], "action": null }
package errs
