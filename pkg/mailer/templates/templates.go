// Package templates renders the HTML bodies of outgoing emails. Templates are
// embedded so the worker binary ships self-contained.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var fs embed.FS

// WelcomeData feeds the welcome template.
type WelcomeData struct {
	UserName      string
	SchoolName    string
	SchoolAddress string
	SupportURL    string
}

// RenderWelcome renders the welcome email body.
func RenderWelcome(d WelcomeData) (string, error) {
	t, err := htmpl.ParseFS(fs, "welcome.tmpl")
	if err != nil {
		return "", fmt.Errorf("parse welcome template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "welcome.tmpl", d); err != nil {
		return "", fmt.Errorf("render welcome template: %w", err)
	}
	return buf.String(), nil
}
