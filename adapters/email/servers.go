package email

import (
	"crypto/tls"
	"fmt"

	gomail "gopkg.in/mail.v2"
)

// Security selects the transport security mode for a server.
type Security string

const (
	// SecuritySSL dials with implicit TLS (typically port 465).
	SecuritySSL Security = "ssl"
	// SecurityStartTLS upgrades a plain connection with STARTTLS (587).
	SecurityStartTLS Security = "starttls"
	// SecurityNone sends in the clear; STARTTLS is still used if offered.
	SecurityNone Security = "none"
)

// ServerConfig describes one SMTP server in the failover chain. The first
// configured server is the primary; the rest are backups tried in order.
type ServerConfig struct {
	Name       string   `mapstructure:"name" yaml:"name" validate:"required"`
	Host       string   `mapstructure:"host" yaml:"host" validate:"required"`
	Port       int      `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	Username   string   `mapstructure:"username" yaml:"username" validate:"required"`
	Password   string   `mapstructure:"password" yaml:"password" validate:"required"`
	SenderName string   `mapstructure:"sender_name" yaml:"sender_name"`
	Security   Security `mapstructure:"security" yaml:"security" validate:"omitempty,oneof=ssl starttls none"`
}

// Dialer is the slice of gomail's dialer the delivery engine needs. Tests
// substitute a scripted implementation to assert exact attempt counts.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// DialerFactory builds a Dialer for one server. The production factory
// returns a gomail dialer configured for the server's security mode.
type DialerFactory func(ServerConfig) Dialer

// NewDialer is the production DialerFactory.
func NewDialer(sc ServerConfig) Dialer {
	d := gomail.NewDialer(sc.Host, sc.Port, sc.Username, sc.Password)
	d.TLSConfig = &tls.Config{ServerName: sc.Host, MinVersion: tls.VersionTLS12}

	switch sc.Security {
	case SecuritySSL:
		d.SSL = true
	case SecurityStartTLS:
		d.StartTLSPolicy = gomail.MandatoryStartTLS
	default:
		d.StartTLSPolicy = gomail.OpportunisticStartTLS
	}
	return d
}

// FromHeader renders the sender identity for this server.
func (sc ServerConfig) FromHeader() string {
	if sc.SenderName == "" {
		return sc.Username
	}
	return fmt.Sprintf("%s <%s>", sc.SenderName, sc.Username)
}
