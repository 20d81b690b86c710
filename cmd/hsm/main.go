package main

import "hyperstack/internal/cli"

func main() {
	cli.Execute()
}
