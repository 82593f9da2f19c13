package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/notitray/internal/colors"
	"github.com/cristianoliveira/notitray/internal/domain"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers.
	HeaderColor string

	// ColumnWidths defines the width for each column.
	ColumnWidths map[string]int
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		ColumnWidths: map[string]int{
			"ID":      8,
			"Date":    19,
			"Kind":    8,
			"State":   6,
			"Title":   28,
			"Message": 40,
		},
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in characters.
	Width int

	// Extractor extracts the value from a notification.
	Extractor func(*domain.Notification) string
}

// TableFormatter renders notifications as a fixed-width table.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewTableFormatter creates a new TableFormatter with default columns.
func NewTableFormatter() *TableFormatter {
	config := DefaultTableConfig()
	columns := []TableColumn{
		{
			Name:  "ID",
			Width: config.ColumnWidths["ID"],
			Extractor: func(n *domain.Notification) string {
				return truncateString(n.ID, config.ColumnWidths["ID"])
			},
		},
		{
			Name:  "Date",
			Width: config.ColumnWidths["Date"],
			Extractor: func(n *domain.Notification) string {
				return formatString(n.CreatedAt.Format("2006-01-02 15:04:05"), config.ColumnWidths["Date"])
			},
		},
		{
			Name:  "Kind",
			Width: config.ColumnWidths["Kind"],
			Extractor: func(n *domain.Notification) string {
				return formatString(n.Kind.String(), config.ColumnWidths["Kind"])
			},
		},
		{
			Name:  "State",
			Width: config.ColumnWidths["State"],
			Extractor: func(n *domain.Notification) string {
				state := "unread"
				if n.IsRead {
					state = "read"
				}
				return formatString(state, config.ColumnWidths["State"])
			},
		},
		{
			Name:  "Title",
			Width: config.ColumnWidths["Title"],
			Extractor: func(n *domain.Notification) string {
				return truncateString(n.Title, config.ColumnWidths["Title"])
			},
		},
		{
			Name:  "Message",
			Width: config.ColumnWidths["Message"],
			Extractor: func(n *domain.Notification) string {
				return truncateString(n.Message, config.ColumnWidths["Message"])
			},
		},
	}
	return &TableFormatter{
		config:  config,
		columns: columns,
	}
}

// WithColumns adds custom columns to the formatter.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// FormatNotifications formats notifications in a table.
func (f *TableFormatter) FormatNotifications(notifications []domain.Notification, writer io.Writer) error {
	if len(notifications) == 0 {
		return nil
	}

	if f.config.ShowHeaders {
		if err := f.writeHeader(writer); err != nil {
			return err
		}
		if err := f.writeSeparator(writer); err != nil {
			return err
		}
	}

	for i := range notifications {
		if err := f.writeRow(&notifications[i], writer); err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes notifications as indented JSON.
func FormatJSON(w io.Writer, notifications []domain.Notification) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(notifications)
}

// writeHeader writes the table header.
func (f *TableFormatter) writeHeader(writer io.Writer) error {
	reset := colors.Reset
	for i, col := range f.columns {
		header := formatString(col.Name, col.Width)
		if i == 0 {
			_, err := fmt.Fprintf(writer, "%s%s%s", f.config.HeaderColor, header, reset)
			if err != nil {
				return err
			}
		} else {
			_, err := fmt.Fprintf(writer, "  %s", header)
			if err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// writeSeparator writes the table separator.
func (f *TableFormatter) writeSeparator(writer io.Writer) error {
	reset := colors.Reset
	for i, col := range f.columns {
		separator := strings.Repeat("-", col.Width)
		if i == 0 {
			_, err := fmt.Fprintf(writer, "%s%s%s", f.config.HeaderColor, separator, reset)
			if err != nil {
				return err
			}
		} else {
			_, err := fmt.Fprintf(writer, "  %s", separator)
			if err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// writeRow writes a single table row.
func (f *TableFormatter) writeRow(notification *domain.Notification, writer io.Writer) error {
	for i, col := range f.columns {
		value := col.Extractor(notification)
		if i > 0 {
			_, err := fmt.Fprintf(writer, "  %s", value)
			if err != nil {
				return err
			}
		} else {
			_, err := fmt.Fprintf(writer, "%s", value)
			if err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(writer)
	return err
}

// Helper functions

// formatString pads or truncates a string to the specified width.
func formatString(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// truncateString truncates a string to the specified width, adding "..." if truncated.
func truncateString(s string, width int) string {
	if len(s) <= width {
		return s + strings.Repeat(" ", width-len(s))
	}
	if width < 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
