// Command board prints an owner's item board and redraws it at every local
// midnight so the countdowns stay current.
package main

import (
	"context"
	"flag"
	"fmt"
	"itemtracker/internal/client"
	"itemtracker/internal/config"
	"itemtracker/internal/countdown"
	"itemtracker/internal/dto"
	"itemtracker/internal/logging"
	"itemtracker/internal/repository"
	"itemtracker/internal/service"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	owner := flag.String("owner", "", "owner email; empty shows every item")
	stage := flag.String("stage", "", "only show items in this stage")
	perPage := flag.Int("per-page", 500, "rows to print")
	once := flag.Bool("once", false, "print once and exit")
	flag.Parse()

	_ = godotenv.Load()

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log)
	defer logger.Sync()

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	clock := countdown.SystemClock()
	itemService := service.NewItemService(repository.NewItemRepository(db), clock, cfg.Items.DefaultPlatform)
	query := dto.BoardQuery{Page: 1, PerPage: *perPage, Stage: *stage}

	draw := func(now time.Time) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		board, err := itemService.Board(ctx, *owner, query)
		if err != nil {
			logger.Error("load board", zap.Error(err))
			return
		}
		if err := render(os.Stdout, board, now); err != nil {
			logger.Error("render board", zap.Error(err))
		}
	}

	draw(clock.Now())
	if *once {
		return
	}

	refresher := countdown.NewRefresher(clock, draw)
	refresher.Start()
	defer refresher.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
}
