package api

import (
	"fmt"
	"html"
	"strings"
)

type docsLink struct {
	href, label string
}

// docsLinks are pinned to the top right of the API reference.
var docsLinks = []docsLink{
	{"/docs/stream", "Live Compile & Events"},
	{"/openapi.yaml", "OpenAPI YAML"},
}

const docsLinkStyle = `background: #161b22; border: 1px solid #30363d; border-radius: 6px; ` +
	`color: #58a6ff; font: 500 12px -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; ` +
	`padding: 5px 12px; text-decoration: none;`

// docsPage renders the Stoplight Elements reference for the OpenAPI
// document at specURL.
func docsPage(title, specURL string) string {
	var nav strings.Builder
	for _, l := range docsLinks {
		fmt.Fprintf(&nav, "    <a href=%q style=%q>%s</a>\n", l.href, docsLinkStyle, html.EscapeString(l.label))
	}
	return fmt.Sprintf(`<!doctype html>
<html lang="en" data-theme="dark">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>%s</title>
  <link href="https://unpkg.com/@stoplight/elements@9.0.0/styles.min.css" rel="stylesheet" />
  <script src="https://unpkg.com/@stoplight/elements@9.0.0/web-components.min.js" crossorigin="anonymous"></script>
</head>
<body style="height: 100vh; margin: 0;">
  <nav style="position: fixed; top: 12px; right: 16px; z-index: 9999; display: flex; gap: 8px;">
%s  </nav>
  <elements-api apiDescriptionUrl=%q router="hash" layout="sidebar" tryItCredentialsPolicy="same-origin" darkMode />
</body>
</html>`, html.EscapeString(title), nav.String(), specURL)
}
