package main

import (
	"rooya_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	app.Run()
}
