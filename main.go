package main

import (
	"github.com/joho/godotenv"
	"github.com/nikogura/interview-coach/cmd"
)

func main() {
	// Load .env if present; INTERVIEW_COACH_* variables override config
	_ = godotenv.Load()

	cmd.Execute()
}
