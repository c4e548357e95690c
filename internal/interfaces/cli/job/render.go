package job

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/inkwell-print/inkwell/internal/application/maintenance"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func isFormat(f string) bool {
	return f == formatText || f == formatJSON || f == formatYAML
}

func render(w io.Writer, report *maintenance.JobReport, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	default:
		return renderText(w, report)
	}
}

func renderText(w io.Writer, report *maintenance.JobReport) error {
	status := "ok"
	if !report.Success {
		status = "FAILED"
	}
	if _, err := fmt.Fprintf(w, "%s: %s (%dms)\n", report.Job, status, report.DurationMS); err != nil {
		return err
	}
	for _, k := range report.CountKeys() {
		if _, err := fmt.Fprintf(w, "  %-18s %d\n", k, report.Counts[k]); err != nil {
			return err
		}
	}
	if report.Error != "" {
		if _, err := fmt.Fprintf(w, "  error: [%s] %s\n", report.ErrorType, report.Error); err != nil {
			return err
		}
	}
	return nil
}
