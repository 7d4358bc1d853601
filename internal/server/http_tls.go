package server

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"sync"
	"time"

	appErrors "resumebuilder/internal/errors"
	"resumebuilder/internal/watch"
)

const certReloadDebounce = time.Second

// certReloader serves the current key pair and reloads it when either file
// changes on disk. A failed reload keeps the previous certificate.
type certReloader struct {
	certFile string
	keyFile  string

	mu       sync.RWMutex
	cert     *tls.Certificate
	notAfter time.Time

	watcher *watch.FileWatcher
	logger  *appErrors.Logger
}

func newCertReloader(certFile, keyFile string, logger *appErrors.Logger) (*certReloader, error) {
	cr := &certReloader{certFile: certFile, keyFile: keyFile, logger: logger}
	if err := cr.load(); err != nil {
		return nil, err
	}
	cr.watcher = watch.New([]string{certFile, keyFile}, certReloadDebounce, cr.reload, logger)
	return cr, nil
}

func (cr *certReloader) load() error {
	cert, err := tls.LoadX509KeyPair(cr.certFile, cr.keyFile)
	if err != nil {
		return fmt.Errorf("failed to load server certificate: %w", err)
	}

	var notAfter time.Time
	if len(cert.Certificate) > 0 {
		if leaf, err := x509.ParseCertificate(cert.Certificate[0]); err == nil {
			notAfter = leaf.NotAfter
		}
	}

	cr.mu.Lock()
	cr.cert = &cert
	cr.notAfter = notAfter
	cr.mu.Unlock()
	return nil
}

func (cr *certReloader) reload() {
	if err := cr.load(); err != nil {
		cr.logger.LogError(err, "Certificate reload failed, keeping previous certificate",
			"cert_file", cr.certFile)
		return
	}
	cr.logger.Info("Server certificate reloaded",
		"cert_file", cr.certFile,
		"not_after", cr.expiry())
}

func (cr *certReloader) expiry() time.Time {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	return cr.notAfter
}

// GetCertificate implements tls.Config.GetCertificate
func (cr *certReloader) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	return cr.cert, nil
}

func (cr *certReloader) Start() error {
	return cr.watcher.Start()
}

func (cr *certReloader) Stop() error {
	return cr.watcher.Stop()
}

// buildTLSConfig returns the server TLS settings around the reloader
func buildTLSConfig(cr *certReloader) *tls.Config {
	return &tls.Config{
		MinVersion:     tls.VersionTLS12,
		GetCertificate: cr.GetCertificate,
	}
}
