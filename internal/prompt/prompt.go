// Package prompt renders the rewrite prompt sent to the LLM. The template
// carries four placeholders: {{.language}}, {{.docstyle}},
// {{.specific_members}} and {{.input}}.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed template.txt
var defaultTemplate string

// Context maps placeholder names to their values for one target.
type Context map[string]string

// NewContext builds the rendering context for a single file.
func NewContext(language, docstyle, specificMembers, input string) Context {
	return Context{
		"language":         language,
		"docstyle":         docstyle,
		"specific_members": specificMembers,
		"input":            input,
	}
}

// Default returns the embedded rewrite template.
func Default() string {
	return defaultTemplate
}

// Render executes the template against ctx. A placeholder with no value in
// ctx is an error rather than an empty substitution, so a fully populated
// context always produces a prompt with zero unresolved placeholders.
func Render(text string, ctx Context) (string, error) {
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing prompt template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}
