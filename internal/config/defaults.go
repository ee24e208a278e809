package config

// Values used for zero-valued fields.
const (
	DefaultRedirectURI   = "http://127.0.0.1:8888/callback"
	DefaultSearchLimit   = 5
	DefaultPlaylistLimit = 10
	DefaultLogLevel      = "info"
)

// Default returns a Config with every defaulted field set.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills zero-valued fields. Fields whose zero value is
// meaningful (default_device, exit_bypass, log.file) are left alone.
func (c *Config) ApplyDefaults() {
	orDefault(&c.Spotify.RedirectURI, DefaultRedirectURI)
	orDefault(&c.Session.SearchLimit, DefaultSearchLimit)
	orDefault(&c.Session.PlaylistLimit, DefaultPlaylistLimit)
	orDefault(&c.Log.Level, DefaultLogLevel)
}

func orDefault[T comparable](field *T, def T) {
	var zero T
	if *field == zero {
		*field = def
	}
}
