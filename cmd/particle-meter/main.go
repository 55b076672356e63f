package main

import (
	"os"

	"particle-meter/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
