package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	texttpl "text/template"
)

//go:embed *.tmpl
var FS embed.FS

const (
	Welcome       = "welcome"
	NewSubscriber = "new_subscriber"
)

// set is the parsed subject, text and html parts of one email.
type set struct {
	subject *texttpl.Template
	text    *texttpl.Template
	html    *htmpl.Template
}

var sets = map[string]*set{
	Welcome:       mustParse(Welcome),
	NewSubscriber: mustParse(NewSubscriber),
}

func mustParse(name string) *set {
	funcs := map[string]any{"default": defaultFn}
	return &set{
		subject: texttpl.Must(texttpl.New(name + ".subject.tmpl").Funcs(funcs).ParseFS(FS, name+".subject.tmpl")),
		text:    texttpl.Must(texttpl.New(name + ".text.tmpl").Funcs(funcs).ParseFS(FS, name+".text.tmpl")),
		html:    htmpl.Must(htmpl.New(name + ".html.tmpl").Funcs(funcs).ParseFS(FS, name+".html.tmpl")),
	}
}

// Known reports whether name is a template set the worker can render.
func Known(name string) bool {
	_, ok := sets[name]
	return ok
}

// Render executes the subject, text and html parts of the named email.
func Render(name string, data any) (subject string, text string, html string, err error) {
	s, ok := sets[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var sb, tb, hb bytes.Buffer
	if err := s.subject.Execute(&sb, data); err != nil {
		return "", "", "", fmt.Errorf("render %s subject: %w", name, err)
	}
	if err := s.text.Execute(&tb, data); err != nil {
		return "", "", "", fmt.Errorf("render %s text: %w", name, err)
	}
	if err := s.html.Execute(&hb, data); err != nil {
		return "", "", "", fmt.Errorf("render %s html: %w", name, err)
	}
	return strings.TrimSpace(sb.String()), tb.String(), hb.String(), nil
}

// defaultFn supports {{ .Value | default "Fallback" }} for blank or zero values.
func defaultFn(fallback any, value any) any {
	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return fallback
		}
		return s
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.IsZero() {
		return fallback
	}
	return value
}
