// Package main provides the nestfit CLI: a catalog server for furniture and
// rental listings with bucketed search, area search, and stock reservation.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
