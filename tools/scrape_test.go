package tools

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Example Page</title><style>body { color: red }</style></head>
<body>
<nav>site navigation</nav>
<script>alert("nope")</script>
<h1>Welcome</h1>
<p>This is the <b>main</b> content.</p>
<footer>copyright</footer>
</body>
</html>`

func TestWebScraper(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	scraper := NewWebScraper()

	t.Run("extracts title and content, drops chrome", func(t *testing.T) {
		out, err := callTool(t, scraper, fmt.Sprintf(`{"url": %q}`, srv.URL))
		require.NoError(t, err)
		assert.Contains(t, out, "# Example Page")
		assert.Contains(t, out, "Welcome")
		assert.Contains(t, out, "main")
		assert.NotContains(t, out, "alert(")
		assert.NotContains(t, out, "site navigation")
		assert.NotContains(t, out, "copyright")
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv404 := httptest.NewServer(http.NotFoundHandler())
		defer srv404.Close()
		_, err := callTool(t, scraper, fmt.Sprintf(`{"url": %q}`, srv404.URL))
		require.Error(t, err)
	})

	t.Run("non-http schemes are rejected", func(t *testing.T) {
		_, err := callTool(t, scraper, `{"url": "file:///etc/passwd"}`)
		require.Error(t, err)
	})
}
