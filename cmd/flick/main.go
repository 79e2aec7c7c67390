package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/TheJusticeMan/flick/internal/app"
	"github.com/TheJusticeMan/flick/internal/config"
	"github.com/TheJusticeMan/flick/internal/server"
	"github.com/TheJusticeMan/flick/internal/store"
	"github.com/TheJusticeMan/flick/internal/tray"
)

func main() {
	fmt.Println("Flick - Gesture Commands")

	configPath := flag.String("config", defaultConfigPath(), "path to the YAML config file")
	noTray := flag.Bool("no-tray", false, "run without the system tray")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	a := app.New(app.Config{
		Store:          st,
		PluginDir:      cfg.PluginDir,
		ResamplePoints: cfg.ResamplePoints,
		MinLength:      cfg.MinLength,
		Threshold:      cfg.Threshold,
		DampenExponent: cfg.DampenExponent,
		PluginTimeout:  cfg.PluginTimeout(),
	})
	defer a.Close()

	if err := a.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	} else {
		for _, p := range a.PluginManager().List() {
			fmt.Printf("Loaded plugin: %s %s\n", p.Manifest.Name, p.Manifest.Version)
		}
	}

	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = findWebDir(cfg.DataDir)
	}
	if staticDir != "" {
		fmt.Printf("Serving static files from: %s\n", staticDir)
	}

	srv := server.New(server.Config{
		StaticDir: staticDir,
		Store:     st,
		App:       a,
	})

	runServer := func() {
		fmt.Printf("Starting server on %s\n", cfg.ListenAddr)
		if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}

	if *noTray || !cfg.Tray {
		runServer()
		return
	}

	// systray.Run must own the main goroutine
	go runServer()

	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnQuit(func() {
		log.Println("Shutting down")
	})
	a.OnMatch(t.SetLastMatch)
	t.Run()
}

// defaultConfigPath resolves ~/.flick/config.yaml.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".flick", "config.yaml")
}

// findWebDir searches for the web directory in common locations.
// It checks "web", "../web", "../../web" and the data directory.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	webDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(webDir); err == nil && info.IsDir() {
		return webDir
	}

	return ""
}
