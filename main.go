// main is the entry point for the readiness CLI.
package main

import (
	"github.com/huangsam/readiness/cmd"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/iostore"
)

func main() {
	err := cmd.Execute()
	iostore.CloseStores()
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
	_ = contract.CloseLogger()
}
