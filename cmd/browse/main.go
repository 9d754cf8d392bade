// cmd/browse/main.go
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"prodview/internal/clients"
	"prodview/internal/tui"
)

func main() {
	source := getEnv("PRODVIEW_SOURCE", "./db.json")
	apiBase := getEnv("PRODVIEW_API_BASE", "https://api.escuelajs.co/api/v1")

	// Keep stray log output away from the terminal UI.
	if f, err := tea.LogToFile("prodview-browse.log", "browse"); err == nil {
		defer f.Close()
	} else {
		log.SetOutput(os.Stderr)
	}

	app := tui.New(source, clients.NewProductsClient(apiBase))
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "browse: %v\n", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
