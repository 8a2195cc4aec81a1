// Package datanikah wires the marriage records dashboard service.
package datanikah

import (
	"context"

	"github.com/kart-io/datanikah/pkg/infra/app"
)

const (
	// Name is the name of the application.
	Name = "datanikah"

	appDescription = `Datanikah marriage records dashboard

This server provides:
  - Spreadsheet import of KUA marriage registers
  - A rule-based assistant answering questions about the records
  - Yearly dashboard statistics and record search
  - Administrator authentication`
)

// NewApp creates a new application instance.
func NewApp() *app.App {
	opts := NewOptions()

	return app.NewApp(
		app.WithName(Name),
		app.WithShortDescription("Marriage records dashboard"),
		app.WithDescription(appDescription),
		app.WithOptions(opts),
		app.WithRunFunc(func() error {
			return Run(opts)
		}),
	)
}

// Run builds the server from opts and blocks until it shuts down.
func Run(opts *Options) error {
	ctx := context.Background()
	srv, err := NewServer(ctx, opts)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
