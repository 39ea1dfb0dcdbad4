// Package types defines the value types, search conditions, and standard
// errors shared by the Nestfit catalog service and its storage backends.
package types
