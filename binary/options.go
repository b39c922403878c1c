package binary

import (
	"net/http"
)

type Option func(i *Installer)

// WithURLFormat overrides the template used to build the download url.
// See [Template] for the available fields; the default is [DefaultURLFormat].
// This is useful to install from a mirror, or from a local server in tests.
func WithURLFormat(format string) Option {
	return func(i *Installer) {
		i.urlformat = format
	}
}

// WithHTTPClient sets the client used to download release archives.
func WithHTTPClient(client *http.Client) Option {
	return func(i *Installer) {
		i.client = client
	}
}

// WithName changes the tool name used as cache key and as the name of the
// binary inside the archive.
func WithName(name string) Option {
	return func(i *Installer) {
		i.name = name
	}
}
