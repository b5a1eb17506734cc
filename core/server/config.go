package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080" validate:"required,numeric"`
	// ApiKey is the secret key required to access the management API.
	ApiKey string `mapstructure:"api_key" default:""`
	// Gateway serves the application bundle on every path outside /api and /swagger.
	Gateway bool `mapstructure:"gateway" default:"true"`
}

// Address returns the listen address.
func (c Config) Address() string {
	return ":" + c.Port
}

// APIPrefix is the route group of the management API.
const APIPrefix = "/api"

// IsReserved reports whether path belongs to the management API or the docs,
// and therefore never reaches the gateway.
func IsReserved(path string) bool {
	for _, p := range []string{APIPrefix, "/swagger"} {
		if path == p || len(path) > len(p) && path[:len(p)+1] == p+"/" {
			return true
		}
	}
	return false
}
