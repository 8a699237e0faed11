package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/patentdoc"
	"gopkg.in/yaml.v3"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	variants, err := deps.Scraper.Scrape(deps.Ctx, c.Target)
	if err != nil {
		return err
	}
	if len(variants) == 0 {
		return patentdoc.Errorf(patentdoc.ENOTFOUND, "no variants for %s", c.Target.URL)
	}

	if !c.HTML {
		for _, v := range variants {
			v.HTML = ""
		}
	}

	var out any = variants[0].Data
	if c.Languages {
		out = variants
	}
	return encode(deps.Stdout, c.Format, out)
}

// encode writes v as indented JSON or YAML.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	default:
		return patentdoc.Errorf(patentdoc.EINVALID, "unknown output format %q", format)
	}
}

// errorText returns the message for application errors and the full error
// text otherwise.
func errorText(err error) string {
	if patentdoc.ErrorCode(err) == patentdoc.EINTERNAL {
		return err.Error()
	}
	return patentdoc.ErrorMessage(err)
}
