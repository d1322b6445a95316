// Package api handles incoming HTTP requests, request validation and response
// formatting. Handlers read the authenticated identity from the request
// context, call the service layer with it explicitly, and map service errors
// to HTTP responses through MapErrorToStatusCode and GetSafeErrorMessage.
package api
