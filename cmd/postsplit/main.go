package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kush-Singh-26/postsplit/builder/partition"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode maps failures to distinct codes so scripts can tell them apart.
func exitCode(err error) int {
	var verr *verifyFailure
	switch {
	case errors.As(err, &verr):
		return 3
	case errors.Is(err, partition.ErrInvalid), errors.Is(err, partition.ErrParse):
		return 2
	default:
		return 1
	}
}
