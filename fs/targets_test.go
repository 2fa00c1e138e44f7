package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/feedscrape"
	"github.com/fwojciec/feedscrape/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTargets(t *testing.T) {
	t.Parallel()

	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "targets.json")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	t.Run("reads name and URL pairs in order", func(t *testing.T) {
		t.Parallel()

		path := write(t, `[
  ["Acme Corp", "https://www.linkedin.com/company/acme/posts/"],
  ["Jane Doe", "https://www.linkedin.com/in/janedoe/recent-activity/all/"]
]`)

		targets, err := fs.LoadTargets(path)

		require.NoError(t, err)
		assert.Equal(t, []feedscrape.Target{
			{Name: "Acme Corp", URL: "https://www.linkedin.com/company/acme/posts/"},
			{Name: "Jane Doe", URL: "https://www.linkedin.com/in/janedoe/recent-activity/all/"},
		}, targets)
	})

	tests := []struct {
		name    string
		content string
		message string
	}{
		{name: "invalid JSON", content: `[["Acme",`, message: "not valid JSON"},
		{name: "not a list", content: `{"Acme": "https://example.com"}`, message: "list of [name, url] pairs"},
		{name: "empty list", content: `[]`, message: "is empty"},
		{name: "entry with one element", content: `[["Acme"]]`, message: "invalid entry"},
		{name: "entry that is not a list", content: `["Acme"]`, message: "invalid entry"},
		{name: "relative URL", content: `[["Acme", "/company/acme"]]`, message: "absolute http(s) URL"},
	}

	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := fs.LoadTargets(write(t, tt.content))

			assert.Equal(t, feedscrape.EINVALID, feedscrape.ErrorCode(err))
			assert.Contains(t, feedscrape.ErrorMessage(err), tt.message)
		})
	}

	t.Run("returns ENOTFOUND with the expected format for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.LoadTargets(filepath.Join(t.TempDir(), "missing.json"))

		assert.Equal(t, feedscrape.ENOTFOUND, feedscrape.ErrorCode(err))
		assert.Contains(t, feedscrape.ErrorMessage(err), `[["Company Name", "URL"], ...]`)
	})

	t.Run("reads YAML name and url entries", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "targets.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
- name: Acme Corp
  url: https://www.linkedin.com/company/acme/posts/
- name: Jane Doe
  url: https://www.linkedin.com/in/janedoe/recent-activity/all/
`), 0644))

		targets, err := fs.LoadTargets(path)

		require.NoError(t, err)
		assert.Equal(t, []feedscrape.Target{
			{Name: "Acme Corp", URL: "https://www.linkedin.com/company/acme/posts/"},
			{Name: "Jane Doe", URL: "https://www.linkedin.com/in/janedoe/recent-activity/all/"},
		}, targets)
	})

	t.Run("rejects YAML entry without a name", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "targets.yml")
		require.NoError(t, os.WriteFile(path, []byte("- url: https://www.linkedin.com/company/acme/posts/\n"), 0644))

		_, err := fs.LoadTargets(path)

		assert.Equal(t, feedscrape.EINVALID, feedscrape.ErrorCode(err))
		assert.Contains(t, feedscrape.ErrorMessage(err), "target name required")
	})

	t.Run("rejects YAML that is not a list", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "targets.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: Acme\n"), 0644))

		_, err := fs.LoadTargets(path)

		assert.Equal(t, feedscrape.EINVALID, feedscrape.ErrorCode(err))
	})
}
