// Package descriptor renders the deployment descriptor from a template.
package descriptor

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/warpack/warpack/internal/core/domain"
	"github.com/warpack/warpack/internal/core/ports"
	"go.trai.ch/zerr"
)

// defaultTemplate is the built-in deployment descriptor. It lists the
// staged packages in a context parameter so the container can tell what
// the archive was built from.
const defaultTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<web-app>
  <display-name>{{.Application}}</display-name>{{if .Packages}}
  <context-param>
    <param-name>warpack.packages</param-name>
    <param-value>{{range $i, $p := .Packages}}{{if $i}},{{end}}{{$p.String}}{{end}}</param-value>
  </context-param>{{end}}
</web-app>
`

var builtinTemplate = template.Must(template.New("descriptor").Parse(defaultTemplate))

// Renderer implements ports.DescriptorRenderer using text/template.
type Renderer struct{}

var _ ports.DescriptorRenderer = (*Renderer)(nil)

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes the descriptor to outputPath. Output depends only on the
// given data, so identical inputs produce identical descriptors.
func (r *Renderer) Render(templatePath string, data domain.DescriptorData, outputPath string) error {
	tmpl, err := loadTemplate(templatePath)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		renderErr := zerr.Wrap(err, domain.ErrRenderFailed.Error())
		return zerr.With(renderErr, "template", tmpl.Name())
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), domain.DirPerm); err != nil {
		renderErr := zerr.Wrap(err, domain.ErrRenderFailed.Error())
		return zerr.With(renderErr, "output", outputPath)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), domain.FilePerm); err != nil {
		renderErr := zerr.Wrap(err, domain.ErrRenderFailed.Error())
		return zerr.With(renderErr, "output", outputPath)
	}

	return nil
}

func loadTemplate(templatePath string) (*template.Template, error) {
	if templatePath == "" {
		return builtinTemplate, nil
	}

	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		parseErr := zerr.Wrap(err, domain.ErrTemplateParseFailed.Error())
		return nil, zerr.With(parseErr, "template", templatePath)
	}
	return tmpl, nil
}
