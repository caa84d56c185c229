package main

import "boltgen/internal/cli"

func main() {
	cli.Execute()
}
