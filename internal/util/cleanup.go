package util

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// SetupInterruptHandler installs a SIGINT/SIGTERM handler that runs
// cleanup before exiting. cleanup may be nil.
func SetupInterruptHandler(cleanup func()) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		fmt.Println("\nInterrupt received. Cleaning up...")

		if cleanup != nil {
			cleanup()
		}
		fmt.Println("\nExiting due to interrupt.")

		os.Exit(1)
	}()
}
