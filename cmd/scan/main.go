// Command scan analyzes bead-plate frames from the terminal without the
// database or blob storage. It reads a single image file, or polls a
// snapshot URL on an interval until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JaimeStill/beadreader/internal/capture"
	"github.com/JaimeStill/beadreader/internal/config"
	"github.com/JaimeStill/beadreader/internal/infrastructure"
	"github.com/JaimeStill/beadreader/pkg/lifecycle"
)

func main() {
	file := flag.String("file", "", "analyze a single image file")
	url := flag.String("url", "", "poll a snapshot URL")
	interval := flag.Duration("interval", 0, "poll interval (default from monitor config)")
	maxSize := flag.Int64("max-size", 10<<20, "maximum frame size in bytes")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if (*file == "") == (*url == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -file or -url is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadInference()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	s := newScanner(infrastructure.NewModel(cfg), os.Stdout, logger.With("system", "scan"))

	if *file != "" {
		source := &capture.FileSource{Path: *file, MaxSize: *maxSize}
		if err := scanOnce(context.Background(), s, source); err != nil {
			log.Fatal("scan failed:", err)
		}
		return
	}

	every := *interval
	if every <= 0 {
		every = cfg.Monitor.IntervalDuration()
	}

	monitor(s, capture.NewHTTPSource(*url, *maxSize, every), every, logger)
}

func scanOnce(ctx context.Context, s *scanner, source capture.Source) error {
	frame, err := source.Capture(ctx)
	if err != nil {
		return err
	}
	return s.cycle(ctx, frame)
}

func monitor(s *scanner, source capture.Source, every time.Duration, logger *slog.Logger) {
	lc := lifecycle.New()

	m := capture.NewMonitor(source, every, s.cycle, logger.With("system", "monitor"))
	m.SetEnabled(true)
	if err := m.Start(lc); err != nil {
		log.Fatal("monitor start failed:", err)
	}

	lc.WaitForStartup()
	fmt.Fprintf(os.Stderr, "polling %s every %s, ctrl-c to stop\n", source.Name(), every)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	if err := lc.Shutdown(every + 30*time.Second); err != nil {
		logger.Error("shutdown incomplete", "error", err)
		os.Exit(1)
	}
}
