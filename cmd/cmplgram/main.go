package main

import (
	"fmt"
	"os"

	"github.com/nihei9/cmplgram/internal/log"
)

func main() {
	log.Init()
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
