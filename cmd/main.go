package main

import (
	"github.com/dyike/arandu/internal/cli"
)

func main() {
	cli.Run()
}
