package certificate

import (
	"fmt"
	"time"
)

// DocumentRenderer turns a template into a binary document.
type DocumentRenderer interface {
	RenderTextDocument(t Template) ([]byte, error)
}

// Generator produces finished certificates.
type Generator struct {
	layout   Layout
	renderer DocumentRenderer
	seal     bool
	now      func() time.Time
}

// NewGenerator creates a Generator. With seal enabled a score badge is placed under the text.
func NewGenerator(layout Layout, renderer DocumentRenderer, seal bool) *Generator {
	return &Generator{
		layout:   layout,
		renderer: renderer,
		seal:     seal,
		now:      time.Now,
	}
}

// Generate renders the certificate of username dated today.
func (g *Generator) Generate(username string, score int) ([]byte, error) {
	t := g.layout.BuildTemplate(username, score, g.now())

	if g.seal {
		png, err := RenderSeal(score)
		if err != nil {
			return nil, fmt.Errorf("render seal: %w", err)
		}
		t.Images = append(t.Images, Image{Name: "seal", Data: png, X: 85, Y: 210, W: 40})
	}

	doc, err := g.renderer.RenderTextDocument(t)
	if err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	return doc, nil
}
