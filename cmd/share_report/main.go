package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ushigai/LuckyDefense-tools/internal/report"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	os.Exit(report.RunCLI(ctx, os.Args[1:]))
}
