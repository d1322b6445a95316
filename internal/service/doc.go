// Package service contains the use cases of the task tracker: account
// registration and login (AuthService) and owner-scoped task management
// (TaskService).
//
// Services receive their dependencies through constructor injection and
// depend only on the store interfaces and the auth package, never on a
// concrete database. The caller's identity is always an explicit argument;
// nothing here reads it from the request or from ambient state.
//
// Error handling:
//   - expected conditions are sentinel errors (ErrDuplicateEmail,
//     ErrInvalidCredentials, ErrAccountNotFound, ErrTaskNotFound) checked with errors.Is
//   - validation failures are returned as domain.ValidationError
//   - unexpected failures are wrapped in ServiceError with the operation name
//
// The API layer maps these to HTTP status codes.
package service
