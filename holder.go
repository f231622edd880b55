package twcfg

import "sync/atomic"

// Holder publishes the current Config to concurrent readers. A reload stores
// a new *Config; readers never observe a partially updated configuration.
type Holder struct {
	cur atomic.Pointer[Config]
}

// NewHolder returns a Holder that starts with cfg (which may be nil).
func NewHolder(cfg *Config) *Holder {
	h := &Holder{}
	if cfg != nil {
		h.cur.Store(cfg)
	}
	return h
}

// Current returns the active Config, or nil before the first Store.
func (h *Holder) Current() *Config {
	return h.cur.Load()
}

// Store replaces the active Config and returns the previous one.
func (h *Holder) Store(cfg *Config) *Config {
	return h.cur.Swap(cfg)
}
