package main

import (
	"github.com/joho/godotenv"
	"github.com/stevehiehn/demoprobe/cmd"
)

func main() {
	_ = godotenv.Load()
	cmd.Execute()
}
