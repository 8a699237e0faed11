package main

import (
	"context"
	"io"

	"github.com/fwojciec/patentdoc"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Scraper patentdoc.Scraper
}

// FetchCmd scrapes a single patent and writes the result to Stdout.
type FetchCmd struct {
	Target    patentdoc.Target
	Format    string // json or yaml
	Languages bool   // print every variant instead of the original document
	HTML      bool   // keep raw page HTML in variant output
}
