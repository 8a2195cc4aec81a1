// Package main is the entry point for the datanikah server.
package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/kart-io/datanikah/internal/datanikah"
)

func main() {
	datanikah.NewApp().Run()
}
