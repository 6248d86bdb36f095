package main

import (
	"log"

	"github.com/thiagokokada/gitout/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatalf("gitout: %v", err)
	}
}
