package server

import (
	"net"
	"os"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvPort    = "PORT"
	EnvSSLCert = "SSL_CERT"
	EnvSSLKey  = "SSL_KEY"
	EnvAPIURL  = "API_URL"
)

// DefaultPort is used when PORT is not set.
const DefaultPort = "5000"

// Config controls how the server listens.
type Config struct {
	Addr     string // listen address, host:port
	CertFile string // TLS certificate; TLS is enabled when both files are set
	KeyFile  string
	APIURL   string // extra origin allowed by connect-src in the CSP header
}

// ConfigFromEnv listens on all interfaces at PORT (default 5000).
func ConfigFromEnv() Config {
	port := os.Getenv(EnvPort)
	if port == "" {
		port = DefaultPort
	}
	return Config{
		Addr:     net.JoinHostPort("0.0.0.0", port),
		CertFile: os.Getenv(EnvSSLCert),
		KeyFile:  os.Getenv(EnvSSLKey),
		APIURL:   os.Getenv(EnvAPIURL),
	}
}

// TLS reports whether both a certificate and a key are configured.
func (c Config) TLS() bool {
	return c.CertFile != "" && c.KeyFile != ""
}
