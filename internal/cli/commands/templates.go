package commands

import (
	"embed"
	"io"
	"text/template"
)

//go:embed templates
var templateFS embed.FS

var configTemplate = template.Must(template.ParseFS(templateFS, "templates/worldline.yaml.tmpl"))

// configTemplateData is rendered into worldline.yaml by init.
type configTemplateData struct {
	File string
}

// writeConfigTemplate renders the worldline.yaml template.
func writeConfigTemplate(w io.Writer, data configTemplateData) error {
	return configTemplate.Execute(w, data)
}

// exampleWorldLine returns the sample events written by init --example.
func exampleWorldLine() ([]byte, error) {
	return templateFS.ReadFile("templates/example.txt")
}
