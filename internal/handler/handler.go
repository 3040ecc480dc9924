// Package handler is the HTTP layer of the admin API.
//
// Handlers bind and validate requests through the validation package, call
// the service layer and write JSON responses. Errors are returned to the
// global error handler, which renders them.
package handler
