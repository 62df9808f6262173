package main

import "github.com/geocine/gensummary/internal/cli"

func main() {
	cli.Execute()
}
