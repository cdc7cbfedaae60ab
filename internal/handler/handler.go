// Package handler is the HTTP layer, the first entry point after the router.
//
// It binds and validates requests through the typed pipeline in base.go,
// calls the service layer and writes the response. Errors are returned to
// the global error handler rather than written here.
package handler
