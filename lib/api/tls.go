package api

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/url"
	"os"
	"runtime"

	"go.uber.org/zap"
)

// Locations searched for a system trust store, same order as crypto/x509 on unix.
var trustStoreFiles = []string{
	"/etc/ssl/certs/ca-certificates.crt",
	"/etc/pki/tls/certs/ca-bundle.crt",
	"/etc/ssl/ca-bundle.pem",
	"/etc/pki/tls/cacert.pem",
	"/etc/pki/ca-trust/extracted/pem/tls-ca-bundle.pem",
	"/etc/ssl/cert.pem",
}

var trustStoreDirs = []string{
	"/etc/ssl/certs",
	"/etc/pki/tls/certs",
}

// LocateTrustStore returns the path of the trust store the platform verifier
// will use, "system" where the OS keeps it outside the filesystem, or "" if
// none exists.
func LocateTrustStore() string {
	switch runtime.GOOS {
	case "darwin", "windows", "ios":
		return "system"
	}
	if file := os.Getenv("SSL_CERT_FILE"); file != "" && fileExists(file) {
		return file
	}
	if dir := os.Getenv("SSL_CERT_DIR"); dir != "" && fileExists(dir) {
		return dir
	}
	for _, file := range trustStoreFiles {
		if fileExists(file) {
			return file
		}
	}
	for _, dir := range trustStoreDirs {
		if fileExists(dir) {
			return dir
		}
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func buildTLSConfig(baseURL *url.URL, cfg *clientConfig, logger *zap.SugaredLogger) (*tls.Config, error) {
	if baseURL.Scheme != "https" {
		return nil, nil
	}
	if cfg.InsecureSkipVerify {
		logger.Warnw("TLS certificate verification is DISABLED by configuration", "url", baseURL.String())
		return &tls.Config{InsecureSkipVerify: true}, nil
	}
	if cfg.CAFile != "" {
		pem, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("reading ca file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("ca file %s contains no PEM certificates", cfg.CAFile)
		}
		return &tls.Config{RootCAs: pool}, nil
	}

	locate := cfg.locateTrustStore
	if locate == nil {
		locate = LocateTrustStore
	}
	if store := locate(); store == "" {
		logger.Warnw("NO TRUST STORE FOUND: TLS certificates of the Etherpad server will NOT be verified. "+
			"Install a CA bundle or configure tls.caFile.", "url", baseURL.String())
		return &tls.Config{InsecureSkipVerify: true}, nil
	}
	return &tls.Config{}, nil
}
