package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddlzenie/intake/pkg/email"
)

func TestDevSender(t *testing.T) {
	t.Parallel()

	t.Run("writes html, metadata and attachments", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		params := validParams()
		params.Tag = "operator-notification"
		params.Attachments = []email.Attachment{
			{Filename: "Zivotopis_Jana_Novakova.pdf", Content: []byte("%PDF-1.4"), ContentType: "application/pdf"},
		}

		require.NoError(t, sender.SendEmail(context.Background(), params))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 3)

		var htmlFile, jsonFile, attachmentFile string
		for _, e := range entries {
			switch {
			case strings.HasSuffix(e.Name(), ".html"):
				htmlFile = e.Name()
			case strings.HasSuffix(e.Name(), ".json"):
				jsonFile = e.Name()
			default:
				attachmentFile = e.Name()
			}
		}
		require.NotEmpty(t, htmlFile)
		require.NotEmpty(t, jsonFile)
		require.NotEmpty(t, attachmentFile)

		html, err := os.ReadFile(filepath.Join(dir, htmlFile))
		require.NoError(t, err)
		assert.Equal(t, params.BodyHTML, string(html))

		metaRaw, err := os.ReadFile(filepath.Join(dir, jsonFile))
		require.NoError(t, err)
		var meta map[string]any
		require.NoError(t, json.Unmarshal(metaRaw, &meta))
		assert.Equal(t, params.SendTo, meta["send_to"])
		assert.Equal(t, params.Subject, meta["subject"])
		assert.Equal(t, "operator-notification", meta["tag"])

		attachment, err := os.ReadFile(filepath.Join(dir, attachmentFile))
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4"), attachment)
	})

	t.Run("rejects invalid params before writing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		params := validParams()
		params.SendTo = ""
		assert.ErrorIs(t, sender.SendEmail(context.Background(), params), email.ErrInvalidParams)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
