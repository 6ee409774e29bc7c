package server

import "errors"

var (
	// ErrConfigStoreRequired is returned when a Server is constructed
	// without a configuration store.
	ErrConfigStoreRequired = errors.New("config store is required")

	// ErrQueryFuncRequired is returned when a Server is constructed
	// without a query runner.
	ErrQueryFuncRequired = errors.New("query runner is required")
)
