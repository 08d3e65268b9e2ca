package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	rentalform "github.com/ezhumalaisanjay/go-rentalform"
	"github.com/ezhumalaisanjay/go-rentalform/internal/config"
	"github.com/ezhumalaisanjay/go-rentalform/internal/logger"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/render"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/storage"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/tui"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/wizard"
)

func main() {
	configPath := flag.String("config", "", "configuration file (optional)")
	format := flag.String("format", "", "artifact format: pdf, text, or html")
	output := flag.String("output", "", "artifact output path (defaults to the suggested filename)")
	restore := flag.Bool("restore", true, "restore saved progress when present")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	zlog, err := logger.New(cfg.Log.Level, "console")
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer zlog.Sync()

	renderFormat := cfg.Server.DefaultFormat
	if *format != "" {
		renderFormat = *format
	}

	wiz := rentalform.NewWizard(
		wizard.WithStore(storage.NewMemory()),
		wizard.WithRegistry(rentalform.DefaultRegistry()),
		wizard.WithFormat(renderFormat),
		wizard.WithLetterhead(cfg.Letterhead),
		wizard.WithSaveSlot(wizard.NewFileSlot(cfg.SaveDir)),
		wizard.WithLogger(zlog),
	)

	if *restore {
		restored, err := wiz.RestoreProgress()
		if err != nil {
			log.Fatalf("restore progress: %v", err)
		}
		if restored {
			fmt.Printf("Resuming from step %d (%s)\n", wiz.Step(), wiz.StepName())
		}
	}

	ctx := context.Background()
	flow := tui.NewFlow(tui.NewSurveyDriver(), wiz)
	outcome, err := flow.Run(ctx)
	if err != nil {
		// Keep the draft around so an interrupted session can resume.
		if saveErr := wiz.SaveProgress(); saveErr == nil {
			fmt.Println("Progress saved.")
		}
		log.Fatalf("wizard: %v", err)
	}

	if err := wiz.ClearProgress(); err != nil {
		zlog.Warn("could not clear saved progress")
	}

	path := *output
	if path == "" {
		path = outcome.Artifact.Filename
	}
	if err := writeArtifact(path, outcome.Artifact); err != nil {
		log.Fatalf("write artifact: %v", err)
	}
	fmt.Printf("Application #%d submitted. Document written to %s\n", outcome.Record.ID, path)
}

func writeArtifact(path string, artifact render.Artifact) error {
	return os.WriteFile(path, artifact.Bytes, 0o644)
}
