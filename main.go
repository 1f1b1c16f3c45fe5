package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lance6716/percolation-estimator/cmd"
)

type signalCause struct {
	sig os.Signal
}

func (c *signalCause) Error() string {
	return "canceled by signal " + c.sig.String()
}

// canceledBySignal returns the signal that canceled ctx, or nil.
func canceledBySignal(ctx context.Context) os.Signal {
	var c *signalCause
	if errors.As(context.Cause(ctx), &c) {
		return c.sig
	}
	return nil
}

func main() {
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigCh:
			cancel(&signalCause{sig: sig})
		}
	}()

	err := cmd.Execute(ctx)
	if err == nil {
		return
	}
	if sig := canceledBySignal(ctx); errors.Is(err, context.Canceled) && sig != nil {
		fmt.Fprintf(os.Stderr, "percolation canceled by signal %s\n", sig.String())
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}
