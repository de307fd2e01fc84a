package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"io"
	"reflect"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData holds the fields available to every template.
type EmailData struct {
	AppName string `json:"AppName"`
	Type    string `json:"Type"`

	Name     string `json:"Name"`
	Email    string `json:"Email"`
	UserID   int64  `json:"UserID"`
	UserName string `json:"UserName"`

	// Order fields, set for order confirmations
	ProductName string `json:"ProductName"`
	Price       string `json:"Price"`
	Quantity    int    `json:"Quantity"`
	Subtotal    string `json:"Subtotal"`

	Time   string    `json:"Time"`
	TimeAt time.Time `json:"TimeAt"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Name | default .UserName }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case nil:
		return fallback
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	}
	rv := reflect.ValueOf(value)
	if rv.IsZero() {
		return fallback
	}
	return value
}

// Template base names. Each has .subject, .text and .html files.
const (
	Welcome           = "welcome"
	ProfileUpdated    = "profile_updated"
	AccountRemoved    = "account_removed"
	OrderConfirmation = "order_confirmation"
)

// Both sets are parsed once from the embedded files; a broken template fails at init.
var (
	textSet = texttpl.Must(texttpl.New("").Funcs(texttpl.FuncMap{"default": defaultFn}).ParseFS(FS, "*.subject.tmpl", "*.text.tmpl"))
	htmlSet = htmpl.Must(htmpl.New("").Funcs(htmpl.FuncMap{"default": defaultFn}).ParseFS(FS, "*.html.tmpl"))
)

type executor interface {
	Execute(w io.Writer, data any) error
}

func execute(t executor, filename string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Render produces the subject, plain text and HTML bodies for the named template.
// The subject is trimmed to a single line.
func Render(name string, data any) (subject, text, html string, err error) {
	st := textSet.Lookup(name + ".subject.tmpl")
	tt := textSet.Lookup(name + ".text.tmpl")
	ht := htmlSet.Lookup(name + ".html.tmpl")
	if st == nil || tt == nil || ht == nil {
		return "", "", "", fmt.Errorf("template %q not found", name)
	}
	if subject, err = execute(st, name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	if text, err = execute(tt, name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	if html, err = execute(ht, name+".html.tmpl", data); err != nil {
		return "", "", "", err
	}
	return strings.Join(strings.Fields(subject), " "), text, html, nil
}
