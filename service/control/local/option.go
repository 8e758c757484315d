package local

// Option customises a Spawner
type Option func(s *Spawner)

// WithProbe checks the worker binary is executable before the first spawn
func WithProbe(probe bool) Option {
	return func(s *Spawner) {
		s.probe = probe
	}
}
