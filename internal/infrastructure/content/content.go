// Package content serves static documents rendered from embedded markdown.
package content

import (
	_ "embed"
	"sync"

	"github.com/perkloop/perkloop/internal/shared/services/markdown"
)

//go:embed risk_disclosure.md
var riskDisclosure []byte

// Document is a rendered page.
type Document struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// Provider renders each document once and serves the cached result.
type Provider struct {
	renderer *markdown.Renderer

	once sync.Once
	risk Document
	err  error
}

func NewProvider(renderer *markdown.Renderer) *Provider {
	return &Provider{renderer: renderer}
}

func (p *Provider) RiskDisclosure() (Document, error) {
	p.once.Do(func() {
		html, err := p.renderer.Render(riskDisclosure)
		if err != nil {
			p.err = err
			return
		}
		p.risk = Document{Markdown: string(riskDisclosure), HTML: html}
	})
	return p.risk, p.err
}
