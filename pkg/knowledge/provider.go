package knowledge

import "sync/atomic"

// Provider hands out the knowledge base once it finished loading. Queries
// arriving before the first Set observe a not-ready state instead of
// blocking.
type Provider struct {
	base atomic.Pointer[Base]
}

func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Set(base *Base) {
	p.base.Store(base)
}

func (p *Provider) Get() (*Base, bool) {
	base := p.base.Load()
	return base, base != nil
}
