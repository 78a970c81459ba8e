package photostamp

import "github.com/avagner/photostamp/core"

// Inner exposes the underlying core.Stamper for advanced use (e.g., custom
// step sequences in tests). Prefer the high-level API for normal usage.
func (s *Stamper) Inner() *core.Stamper { return s.inner }

// Steps returns the default step sequence the Stamper runs.
func (s *Stamper) Steps() []core.Step { return s.steps }
