// Package cli provides CLI utilities for fsearch.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/fsearch/internal/fileuri"
	"github.com/hyperjump/fsearch/internal/models"
)

// OutputFormat is the format for find result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact prints one URI per line, for piping.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat maps a flag value to an OutputFormat. The empty string means text.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case "", OutputText:
		return OutputText, nil
	case OutputCompact, OutputJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, compact or json)", s)
	}
}

// WriteResults writes a find response to w in the given format.
func WriteResults(w io.Writer, response *models.FindResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputCompact:
		for _, uri := range response.Results {
			if _, err := fmt.Fprintln(w, uri); err != nil {
				return err
			}
		}
		return nil
	default:
		return writeResultsText(w, response)
	}
}

func writeResultsText(w io.Writer, response *models.FindResponse) error {
	if _, err := fmt.Fprintf(w, "\nFound %d files matching %q in %dms\n\n",
		response.Total, response.Pattern, response.QueryTime); err != nil {
		return err
	}
	for i, uri := range response.Results {
		display := uri
		if p, err := fileuri.ToPath(uri); err == nil {
			display = p
		}
		if _, err := fmt.Fprintf(w, "%4d  %s\n", i+1, display); err != nil {
			return err
		}
	}
	return nil
}
