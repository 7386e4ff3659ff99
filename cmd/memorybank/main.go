package main

import (
	"github.com/habiliai/memorybank/cmd/memorybank/cmd"
)

func main() {
	cmd.Execute()
}
