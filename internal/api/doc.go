// Package api handles incoming HTTP requests, request validation and
// response formatting. Handlers translate HTTP concerns into service calls
// and answer every outcome, success or failure, with the JSON envelope
// defined in internal/api/shared.
package api
