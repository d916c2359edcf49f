// Package mocks provides hand-written mock implementations of the store and
// service interfaces for testing. Each mock exposes function fields so tests
// can override exactly the behavior they exercise, with sensible in-memory
// defaults for the rest.
package mocks
