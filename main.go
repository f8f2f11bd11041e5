package main

import (
	"github.com/joho/godotenv"

	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/cmd"
)

func main() {
	// .env is a convenience for local runs; absence is not an error.
	_ = godotenv.Load()
	cmd.Execute()
}
