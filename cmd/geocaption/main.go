package main

import (
	"github.com/johananj/geocaption/pkg/cli"
)

func main() {
	cli.Execute()
}
