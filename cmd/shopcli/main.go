package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/eczhh/FakeStore/internal/cli"
)

func main() {
	// Ctrl+C отменяет контекст: висящий сетевой вызов завершится ошибкой,
	// незавершённый переход не оставит после себя частично изменённого состояния
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cli.NewRoot().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
