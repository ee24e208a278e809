package main

import "github.com/tessro/termspot/internal/cli"

func main() {
	cli.Execute()
}
