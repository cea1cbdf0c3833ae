package main

import (
	"github.com/Technosystem-Labs/litex/cmd"
)

func main() {
	cmd.Execute()
}
