package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gallery3d/internal/commands"
	"gallery3d/internal/content"
	"gallery3d/internal/env"
	"gallery3d/internal/galleryconfig"
	"gallery3d/internal/logger"
)

// app is the state shared by every subcommand.
type app struct {
	configPath string
	cfg        galleryconfig.Config
	log        *logger.Logger
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "gallery: %v\n", err)
		if errors.Is(err, commands.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("gallery", flag.ContinueOnError)
	configPath := global.String("config", galleryconfig.DefaultPath, "TOML configuration file")
	envPath := global.String("env", ".env", "dotenv file loaded before GALLERY_* variables are read")
	if err := global.Parse(args); err != nil {
		return err
	}

	a := &app{configPath: *configPath}
	var warnings []string
	if err := env.Load(*envPath); err != nil {
		warnings = append(warnings, err.Error())
	}
	cfg, err := galleryconfig.Load(*configPath)
	if err != nil {
		warnings = append(warnings, err.Error()+"; using defaults")
	}
	if cfg, err = env.Overlay(cfg, os.LookupEnv); err != nil {
		warnings = append(warnings, err.Error()+"; environment ignored")
	}
	a.cfg = cfg
	a.log = logger.New(cfg.Log.Path)
	for _, w := range warnings {
		a.log.Log(w)
		fmt.Fprintln(os.Stderr, "gallery:", w)
	}

	reg := a.registry()
	err = reg.Execute(global.Args())
	if errors.Is(err, commands.ErrUsage) {
		reg.Usage(os.Stderr, "gallery")
	}
	return err
}

func (a *app) registry() *commands.Registry {
	r := commands.NewRegistry()
	a.registerView(r)
	a.registerServe(r)
	a.registerSearch(r)
	a.registerPlaceholders(r)
	a.registerImport(r)
	a.registerInitConfig(r)
	a.registerFetchFont(r)
	return r
}

func (a *app) store() *content.Store {
	return content.NewStore(a.cfg.Content.Root, a.cfg.Content.WallCount,
		content.NewRenderer(a.cfg.Content.HighlightStyle), a.log)
}
