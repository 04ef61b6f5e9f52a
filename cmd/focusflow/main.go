package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"focusflow/internal/ai"
	"focusflow/internal/engine"
	"focusflow/internal/state"
	"focusflow/internal/storage"
	"focusflow/internal/update"
)

func main() {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	var store storage.Store
	sqlite := storage.NewSQLiteStore(cfg.DataPath)
	if err := sqlite.Open(); err != nil {
		// Degraded mode: the session works, nothing survives restart.
		log.Printf("focusflow: storage unavailable, running in-memory: %v", err)
		store = storage.NewMemoryStore()
	} else {
		store = sqlite
	}
	defer store.Close()

	var gen ai.ContentGenerator
	gemini, err := ai.NewGemini(nil)
	if err != nil {
		log.Printf("focusflow: %v; AI features disabled", err)
		gen = ai.Disabled{}
	} else {
		gemini.SetModels(cfg.ChatModel, cfg.AnalysisModel)
		gen = gemini
		cfg.AIEnabled = true
	}

	states := state.NewManager(store)
	eng := engine.New(states, gen)

	program := tea.NewProgram(update.NewModel(states, eng, cfg))
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "focusflow failed: %v\n", err)
		os.Exit(1)
	}
}
