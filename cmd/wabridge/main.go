package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattjoyce/wabridge/internal/config"
	"github.com/mattjoyce/wabridge/internal/dedupe"
	"github.com/mattjoyce/wabridge/internal/dispatch"
	"github.com/mattjoyce/wabridge/internal/events"
	"github.com/mattjoyce/wabridge/internal/log"
	"github.com/mattjoyce/wabridge/internal/media"
	"github.com/mattjoyce/wabridge/internal/relay"
	"github.com/mattjoyce/wabridge/internal/sender"
	"github.com/mattjoyce/wabridge/internal/storage"
	"github.com/mattjoyce/wabridge/internal/tui/watch"
	"github.com/mattjoyce/wabridge/internal/webhook"
)

var version = "0.1.0-dev"

func main() {
	os.Exit(runCLI(os.Args[1:]))
}

func runCLI(cliArgs []string) int {
	if len(cliArgs) < 1 {
		printUsage()
		return 1
	}

	cmd := cliArgs[0]
	args := cliArgs[1:]

	switch cmd {
	case "serve":
		return runServe(args)
	case "watch":
		return runWatch(args)
	case "config":
		return runConfigNoun(args)
	case "version", "--version":
		fmt.Printf("wabridge %s\n", version)
		return 0
	case "help", "--help", "-h":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `wabridge - WhatsApp Business webhook bridge

Usage:
  wabridge serve [--config path]      Start the webhook server
  wabridge watch [--url u] [--token t] Live monitor for a running server
  wabridge config lock [--config path] Write the config checksum manifest
  wabridge config check [--config path] Verify config against the manifest
  wabridge version                     Print version
  wabridge help                        Show this help
`)
}

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "wabridge.yaml", "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	log.Setup(cfg.Service.LogLevel)
	logger := log.Get()

	if err := config.Check(*configPath); err != nil {
		logger.Error("config integrity check failed", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	maxBody, err := config.ParseMaxBodySize(cfg.WhatsApp.MaxBodySize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	hub := events.NewHub(200)
	stats := dispatch.NewStats()
	dedup := dedupe.New(cfg.Service.DedupeTTL)

	fetcher := media.NewClient(media.Config{
		BaseURL:         cfg.WhatsApp.GraphBaseURL,
		AccessToken:     cfg.WhatsApp.AccessToken,
		MetadataTimeout: cfg.WhatsApp.MetadataTimeout,
		DownloadTimeout: cfg.WhatsApp.DownloadTimeout,
	}, log.WithComponent("media"))

	var store *media.Store
	if cfg.Media.StoragePath != "" {
		store = media.NewStore(cfg.Media.StoragePath)
		if err := store.EnsureDirs(); err != nil {
			logger.Error("media storage setup failed", "error", err)
			return 1
		}
	}

	var chat *relay.ChatClient
	if cfg.Chat.BaseURL != "" {
		chat = relay.NewChatClient(relay.ChatConfig{
			BaseURL:        cfg.Chat.BaseURL,
			AccessToken:    cfg.Chat.AccessToken,
			ConversationID: cfg.Chat.ConversationID,
			Timeout:        cfg.Chat.Timeout,
		}, log.WithComponent("chat"))
	}

	var docs *relay.TransactClient
	if cfg.Transact.BaseURL != "" {
		docs = relay.NewTransactClient(relay.TransactConfig{
			BaseURL:       cfg.Transact.BaseURL,
			AccessToken:   cfg.Transact.AccessToken,
			UploadTimeout: cfg.Transact.UploadTimeout,
		}, log.WithComponent("transact"))
	}

	send := sender.New(sender.Config{
		BaseURL:       cfg.WhatsApp.GraphBaseURL,
		AccessToken:   cfg.WhatsApp.AccessToken,
		PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
	}, log.WithComponent("sender"))

	var recorder *storage.MessageLog
	if cfg.State.Path != "" {
		db, err := storage.OpenSQLite(ctx, cfg.State.Path)
		if err != nil {
			logger.Error("message log setup failed", "error", err)
			return 1
		}
		defer db.Close()
		recorder = storage.NewMessageLog(db)
	}

	opts := dispatch.Options{
		Fetcher:  fetcher,
		Sender:   send,
		Recorder: recorder,
		Dedup:    dedup,
		Hub:      hub,
		Stats:    stats,
		Logger:   log.WithComponent("dispatch"),
	}
	if store != nil {
		opts.Store = store
	}
	if chat != nil {
		opts.Chat = chat
	}
	if docs != nil {
		opts.Docs = docs
	}
	dispatcher := dispatch.New(opts)

	probers := map[string]webhook.Prober{}
	if chat != nil {
		probers["chat"] = chat
	}
	if docs != nil {
		probers["transact"] = docs
	}

	server := webhook.New(webhook.Config{
		Listen:      cfg.Listen,
		VerifyToken: cfg.WhatsApp.VerifyToken,
		AppSecret:   cfg.WhatsApp.AppSecret,
		MaxBodySize: maxBody,
		AuthToken:   cfg.API.AuthToken,
	}, dispatcher, hub, stats, probers, log.WithComponent("webhook"))

	logger.Info("wabridge starting", "version", version, "listen", cfg.Listen)

	if err := server.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("server stopped", "error", err)
		return 1
	}

	logger.Info("wabridge stopped")
	return 0
}

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	url := fs.String("url", "http://127.0.0.1:8080", "Base URL of a running server")
	token := fs.String("token", os.Getenv("WABRIDGE_API_TOKEN"), "Bearer token for the events endpoint")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	p := tea.NewProgram(watch.New(*url, *token))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
		return 1
	}
	return 0
}

func runConfigNoun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: wabridge config <lock|check> [--config path]")
		return 1
	}

	sub := args[0]
	fs := flag.NewFlagSet("config "+sub, flag.ContinueOnError)
	configPath := fs.String("config", "wabridge.yaml", "Path to configuration file")
	if err := fs.Parse(args[1:]); err != nil {
		return 1
	}

	switch sub {
	case "lock":
		if err := config.Lock(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Lock failed: %v\n", err)
			return 1
		}
		fmt.Println("Checksum manifest written")
		return 0
	case "check":
		if err := config.Check(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Check failed: %v\n", err)
			return 1
		}
		fmt.Println("Config matches manifest")
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", sub)
		return 1
	}
}
