// Shared helpers for mealplanner CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/walidkhalla/mealplanner/internal/logging"
	"github.com/walidkhalla/mealplanner/internal/repository"
	"github.com/walidkhalla/mealplanner/internal/session"
	"github.com/walidkhalla/mealplanner/internal/sqlite"
)

// openRepos opens the store and session and wires the repositories. The
// caller must invoke the returned closer.
func openRepos() (*repository.Repositories, func(), error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve config dir: %w", err)
	}
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve data dir: %w", err)
	}

	logging.Init()
	store, err := sqlite.Open(dataDir, logging.L())
	if err != nil {
		logging.Close()
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	sess, err := session.Open(configDir)
	if err != nil {
		store.Close()
		logging.Close()
		return nil, nil, fmt.Errorf("open session: %w", err)
	}

	closer := func() {
		store.Close()
		logging.Close()
	}
	return repository.New(store, sess), closer, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// strOrDash renders an optional string for table output.
func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// checkbox renders a checked flag for list output.
func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}
