package notify

import (
	"fmt"
	"html/template"
	"strings"

	"AIUpdatesMonitor/internal/domain"
)

const htmlDigestTemplate = `<html>
<body style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h1>AI Updates Monitor</h1>
  <p>{{len .}} new update{{if ne (len .) 1}}s{{end}} found:</p>
  {{range .}}
  <div style="margin: 16px 0; padding: 12px; border-left: 4px solid #3498db; background: #f8f9fa;">
    <div style="font-size: 0.85em; color: #666;">{{.SourceName}}</div>
    <div style="font-weight: bold; margin: 6px 0;">{{.Title}}</div>
    {{if .Snippet}}<div style="margin: 6px 0;">{{.Snippet}}</div>{{end}}
    {{if .URL}}<div><a href="{{.URL}}">Read more</a></div>{{end}}
    {{if not .PublishedAt.IsZero}}<div style="font-size: 0.85em; color: #666;">{{.PublishedAt.Format "2006-01-02 15:04 MST"}}</div>{{end}}
  </div>
  {{end}}
</body>
</html>`

var digestTemplate = template.Must(template.New("digest").Parse(htmlDigestTemplate))

// htmlDigest renders the batch as the HTML email body.
func htmlDigest(items []domain.SeenItem) (string, error) {
	var out strings.Builder
	if err := digestTemplate.Execute(&out, items); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return out.String(), nil
}

// textDigest renders the batch as a plain-text body shared by the email
// alternative part and the console channel.
func textDigest(items []domain.SeenItem) string {
	var out strings.Builder
	fmt.Fprintf(&out, "AI Updates Monitor: %d new update(s)\n\n", len(items))
	for _, item := range items {
		fmt.Fprintf(&out, "[%s] %s\n", item.SourceType, item.SourceName)
		fmt.Fprintf(&out, "  %s\n", item.Title)
		if item.Snippet != "" {
			fmt.Fprintf(&out, "  %s\n", item.Snippet)
		}
		if item.URL != "" {
			fmt.Fprintf(&out, "  %s\n", item.URL)
		}
		if !item.PublishedAt.IsZero() {
			fmt.Fprintf(&out, "  published %s\n", item.PublishedAt.Format("2006-01-02 15:04 MST"))
		}
		out.WriteString("\n")
	}
	return out.String()
}
