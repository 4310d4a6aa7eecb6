package main

import "nucleictl/internal/cli"

func main() {
	cli.Execute()
}
