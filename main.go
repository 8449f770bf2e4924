package main

import "github.com/ezyqa/game-tester/pkg/cli"

func main() {
	cli.Execute()
}
