// Package postgres provides PostgreSQL implementations of the store
// interfaces, along with helpers that translate driver errors into the
// store's sentinel error taxonomy.
package postgres
