package main

import (
	"fmt"
	"runtime"
)

// set through -ldflags at build time
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func printVersion() {
	fmt.Printf("teiadao version: %s-%s\n", Version, Commit)
	fmt.Printf("App build date: %s\n", BuildDate)
	fmt.Printf("Golang version: %s\n", runtime.Version())
}
