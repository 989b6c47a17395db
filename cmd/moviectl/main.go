package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/movie-catalog-be/internal/cli"
	"github.com/spf13/pflag"
)

func main() {
	url := pflag.StringP("url", "u", envOr("MOVIE_API_URL", "http://localhost:8000"), "base URL of the movie API")
	timeout := pflag.DurationP("timeout", "t", 30*time.Second, "HTTP request timeout")
	pflag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := cli.NewClient(*url, *timeout)
	menu := cli.NewMenu(client, os.Stdin, os.Stdout, cli.TerminalPasswordReader(os.Stdout))
	if err := menu.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "moviectl:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
