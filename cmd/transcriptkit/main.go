package main

import "github.com/devbush/transcriptkit/internal/adapters/cli"

func main() {
	cli.Execute()
}
