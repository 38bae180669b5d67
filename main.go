package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/spigell/hh-advisor/cmd"
)

func main() {
	// A .env file is optional and never overrides real environment variables.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
