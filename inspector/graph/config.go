package graph

// Config controls what inspectors extract
type Config struct {
	KeepComments bool // attach leading comments and preprocessor lines to the following member
	CacheSize    int  // number of parsed files kept between project inspections, 0 disables caching
}

// DefaultConfig returns the inspector defaults
func DefaultConfig() *Config {
	return &Config{
		KeepComments: true,
		CacheSize:    512,
	}
}
