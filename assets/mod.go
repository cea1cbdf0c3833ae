package assets

import (
	"embed"
	"text/template"
)

//go:embed templates/*
var templatesFS embed.FS

var Templates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

// ManifestTemplate fills the starter design manifest created by
// `litex manifest init`.
type ManifestTemplate struct {
	Name   string
	Device string
}
