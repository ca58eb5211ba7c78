package main

import (
	"fmt"
	"os"

	"github.com/grand-thief-cash/workplan/internal/application"
	"github.com/grand-thief-cash/workplan/internal/config"

	_ "github.com/grand-thief-cash/workplan/internal/registry_ext"
)

func main() {
	app := application.GetApp()
	config.Init(app)
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "workplan-server: %v\n", err)
		os.Exit(1)
	}
}
