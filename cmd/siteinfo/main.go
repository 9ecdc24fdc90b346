package main

import (
	"log"

	"github.com/webscope/siteinfo/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("siteinfo failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("siteinfo failed: %v", err)
	}
}
