// Package format provides output formatting functionality for CLI commands.
// It includes status-line formatters and notification table display.
package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cristianoliveira/notitray/internal/domain"
)

// Status formats supported by the status command.
const (
	StatusCompact   = "compact"
	StatusCountOnly = "count-only"
	StatusDetailed  = "detailed"
	StatusJSON      = "json"
)

// StatusFormats lists all supported status formats.
var StatusFormats = []string{StatusCompact, StatusCountOnly, StatusDetailed, StatusJSON}

// StatusData holds aggregated status information.
type StatusData struct {
	Total      int            `json:"total"`
	Unread     int            `json:"unread"`
	ByKind     map[string]int `json:"by_kind"`
	UnreadKind map[string]int `json:"unread_by_kind"`
}

// BuildStatus aggregates notifications into status data.
func BuildStatus(notifications []domain.Notification, unread int) StatusData {
	data := StatusData{
		Total:      len(notifications),
		Unread:     unread,
		ByKind:     make(map[string]int),
		UnreadKind: make(map[string]int),
	}
	for _, n := range notifications {
		kind := string(n.Kind)
		data.ByKind[kind]++
		if !n.IsRead {
			data.UnreadKind[kind]++
		}
	}
	return data
}

// FormatStatus writes status data in the requested format.
func FormatStatus(w io.Writer, data StatusData, format string) error {
	switch format {
	case StatusCountOnly:
		_, err := fmt.Fprintf(w, "%d\n", data.Unread)
		return err
	case StatusDetailed:
		return formatDetailed(w, data)
	case StatusJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case StatusCompact, "":
		return formatCompact(w, data)
	default:
		return fmt.Errorf("unknown status format: %s", format)
	}
}

// formatCompact writes a one-line summary suitable for a status bar.
// Format: "3 unread (12 total)" or "no unread notifications".
func formatCompact(w io.Writer, data StatusData) error {
	if data.Unread == 0 {
		_, err := fmt.Fprintf(w, "no unread notifications\n")
		return err
	}
	_, err := fmt.Fprintf(w, "%d unread (%d total)\n", data.Unread, data.Total)
	return err
}

// formatDetailed writes the summary plus per-kind unread counts.
func formatDetailed(w io.Writer, data StatusData) error {
	if err := formatCompact(w, data); err != nil {
		return err
	}
	if data.Unread == 0 {
		return nil
	}
	for _, kind := range domain.Kinds {
		count := data.UnreadKind[string(kind)]
		if count == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s: %d\n", kind, count); err != nil {
			return err
		}
	}
	return nil
}
