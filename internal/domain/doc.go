// Package domain contains the core business entities of the task tracker:
// accounts, tasks and the task status enumeration, together with the
// validation rules that hold regardless of how they are stored or served.
package domain
