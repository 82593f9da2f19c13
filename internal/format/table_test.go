package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/notitray/internal/domain"
)

func TestTableFormatter(t *testing.T) {
	created := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)
	notifs := []domain.Notification{
		{ID: "abc", Kind: domain.KindWarning, Title: "Disk almost full", Message: "90% used", CreatedAt: created},
		{ID: "def", Kind: domain.KindInfo, Title: "Backup done", IsRead: true, CreatedAt: created},
	}

	t.Run("renders header and rows", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewTableFormatter().FormatNotifications(notifs, &buf))

		out := buf.String()
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.Len(t, lines, 4, "header, separator, two rows")
		assert.Contains(t, lines[0], "ID")
		assert.Contains(t, lines[0], "Title")
		assert.Contains(t, lines[2], "abc")
		assert.Contains(t, lines[2], "warning")
		assert.Contains(t, lines[2], "unread")
		assert.Contains(t, lines[2], "2026-08-30 14:30:00")
		assert.Contains(t, lines[3], "read")
	})

	t.Run("empty list writes nothing", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewTableFormatter().FormatNotifications(nil, &buf))
		assert.Empty(t, buf.String())
	})

	t.Run("long values are truncated with ellipsis", func(t *testing.T) {
		long := []domain.Notification{{
			ID:        "x",
			Kind:      domain.KindInfo,
			Title:     strings.Repeat("t", 60),
			Message:   strings.Repeat("m", 80),
			CreatedAt: created,
		}}
		var buf bytes.Buffer
		require.NoError(t, NewTableFormatter().FormatNotifications(long, &buf))
		assert.Contains(t, buf.String(), "...")
	})
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc  ", truncateString("abc", 5))
	assert.Equal(t, "ab...", truncateString("abcdefgh", 5))
	assert.Equal(t, "ab", truncateString("abcdefgh", 2))
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(&buf, []domain.Notification{{ID: "a", Title: "hi"}}))
	assert.Contains(t, buf.String(), `"id": "a"`)
}
