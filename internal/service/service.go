// Package service contains the business logic.
//
// It sits between the handler and repository layers. It normalizes validated
// input (trimmed names, ordered question-count bounds, upper-case levels,
// clamped sample sizes), calls the repositories, and turns absent records
// into 404 errors.
package service
