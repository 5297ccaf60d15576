package main

import (
	"github.com/tailpoint/tailpoint/logger"
	"github.com/tailpoint/tailpoint/safego"
)

func main() {
	defer safego.Recovery(true)

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}
