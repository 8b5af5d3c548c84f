package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mediahub/internal/agent"
	"github.com/mediahub/internal/logger"
)

func main() {
	configPath := flag.String("config", "agent.yaml", "path to agent config file")
	register := flag.String("register", "", "register this installation as a new device with the given description, then exit")
	once := flag.Bool("once", false, "run a single sync and exit")
	flag.Parse()

	slogger := logger.InitLogger(os.Getenv("ENVIRONMENT"))

	cfg, err := agent.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load agent config: %v", err)
	}

	a := agent.New(cfg, slogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *register != "" {
		deviceID, err := a.Register(ctx, *register)
		if err != nil {
			log.Fatalf("Failed to register device: %v", err)
		}
		log.Printf("Registered device %s; add it to %s as device_id", deviceID, *configPath)
		return
	}

	if *once {
		if err := a.SyncOnce(ctx); err != nil {
			log.Fatalf("Sync failed: %v", err)
		}
		return
	}

	if err := a.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Agent stopped: %v", err)
	}
}
