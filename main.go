package main

import (
	"archdoc/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// Pick up a local .env if one exists; real environment wins.
	_ = godotenv.Load()

	cmd.Execute()
}
