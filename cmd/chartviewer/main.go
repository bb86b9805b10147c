package main

import (
	"fmt"
	"os"

	"github.com/iafilius/MultiAxisChart/src/logging"
)

func main() {
	err := newRootCmd().Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
