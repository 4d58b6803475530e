package main

import (
	"fmt"
	"os"

	"storecounter/internal/config"
)

func main() {
	cfg := config.Load()

	if err := RootCommand(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
