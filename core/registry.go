package core

import "sync"

// codecPair groups the decoder and encoder registered for one format.
// Stamping always re-encodes in the source format, so the two travel
// together.
type codecPair struct {
	dec Decoder
	enc Encoder
}

// DefaultRegistry is a thread-safe Registry keyed by Format.
type DefaultRegistry struct {
	mu     sync.RWMutex
	codecs map[Format]*codecPair
}

// NewRegistry returns an empty DefaultRegistry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{codecs: make(map[Format]*codecPair)}
}

func (r *DefaultRegistry) RegisterDecoder(f Format, d Decoder) {
	r.mu.Lock()
	r.pair(f).dec = d
	r.mu.Unlock()
}

func (r *DefaultRegistry) RegisterEncoder(f Format, e Encoder) {
	r.mu.Lock()
	r.pair(f).enc = e
	r.mu.Unlock()
}

func (r *DefaultRegistry) DecoderFor(f Format) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.codecs[f]; ok && p.dec != nil {
		return p.dec, true
	}
	return nil, false
}

func (r *DefaultRegistry) EncoderFor(f Format) (Encoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.codecs[f]; ok && p.enc != nil {
		return p.enc, true
	}
	return nil, false
}

// Formats returns every format with at least one registered codec.
func (r *DefaultRegistry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Format, 0, len(r.codecs))
	for f := range r.codecs {
		out = append(out, f)
	}
	return out
}

// pair returns the codecPair for f, creating it if needed. Callers must
// hold the write lock.
func (r *DefaultRegistry) pair(f Format) *codecPair {
	p, ok := r.codecs[f]
	if !ok {
		p = &codecPair{}
		r.codecs[f] = p
	}
	return p
}
