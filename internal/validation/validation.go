// Package validation contains the logic for validating
// request data.
//
// Request payloads are checked either with `validator` struct tags or
// against a declarative Schema, and failures are converted into field
// errors the client can understand.
package validation
