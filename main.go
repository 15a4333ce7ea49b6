// Package main is the entry point for the reportboard CLI.
package main

import (
	"github.com/huangsam/reportboard/cmd"
	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/internal/datastore"
)

func main() {
	if err := run(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}

// run keeps the deferred cleanup ahead of LogFatal, which exits.
func run() error {
	cmd.SetStoreManager(datastore.Manager)
	defer datastore.CloseStore()
	defer func() {
		if err := cmd.StopProfiling(); err != nil {
			contract.LogWarn("Cannot stop profiling", err)
		}
	}()
	return cmd.Execute()
}
