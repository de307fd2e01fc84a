package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd(newApp()).Execute(); err != nil {
		os.Exit(1)
	}
}
