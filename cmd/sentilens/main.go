package main

import (
	"os"

	"github.com/wonny/sentilens/cmd/sentilens/commands"
)

// main is the entry point for the sentilens CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/sentilens [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
