// Package smtp implements the outgoing-mail transport used by the
// newsletter sender worker.
package smtp

import "io"

// Client is the subset of *smtp.Client the sender relies on; it exists so
// tests can substitute a fake connection.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface abstracts the connection setup.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
