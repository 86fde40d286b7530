package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/park285/chess-rules/internal/adapter/textpresenter"
	"github.com/park285/chess-rules/internal/chessbuilder"
	appcfg "github.com/park285/chess-rules/internal/config"
	"github.com/park285/chess-rules/internal/obslog"
)

func main() {
	closeLog, err := obslog.InitFromEnv()
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = closeLog() }()
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := chessbuilder.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("chess init error: %v", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.Warn("shutdown_close_error", zap.Error(err))
		}
	}()

	sh := newShell(deps.Manager, deps.Formatter, textpresenter.NewPresenter(os.Stdout), cfg.HistoryLimit)
	_ = sh.say(deps.Formatter.Help())

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
		if err := sc.Err(); err != nil {
			logger.Warn("stdin_read_error", zap.Error(err))
		}
	}()

	for {
		fmt.Fprint(os.Stdout, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stdout)
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if sh.handle(ctx, line) {
				return
			}
		}
	}
}
