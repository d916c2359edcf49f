// Package service contains application services that orchestrate domain
// logic and persistence, independent of the HTTP transport.
package service
