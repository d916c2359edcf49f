// Package api contains the HTTP handlers, request/response models, and
// error mapping for the task tracking API. Handlers decode and validate
// payloads, delegate to stores and services, and translate internal errors
// into sanitized JSON responses.
package api
