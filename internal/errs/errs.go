// Package errs defines the error types shared by the data layer and the HTTP
// edge.
//
// Data-layer errors (ValidationError, SchemaError, DecodeError, InsertError)
// describe what went wrong while reading or writing a record. HTTPError is the
// response shape the API renders; sqlerr.HandleError converts the former into
// the latter.
package errs
