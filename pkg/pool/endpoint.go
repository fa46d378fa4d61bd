// Package pool parses stratum pool URLs and credentials into normalized
// descriptors and resolves the algorithm and variant a pool expects.
package pool

import (
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultPort is used when a URL carries no port.
	DefaultPort uint16 = 3333

	// Scheme is the only URL scheme accepted.
	Scheme = "stratum+tcp://"
)

// Endpoint is the host/port pair of a pool together with the text it was
// parsed from.
type Endpoint struct {
	Host string
	Port uint16
	URL  string
}

// HostPort renders the endpoint as host:port.
func (e Endpoint) HostPort() string {
	return e.Host + ":" + strconv.Itoa(int(e.Port))
}

// ParseEndpoint accepts:
//
//	host
//	host:port
//	stratum+tcp://host[:port]
//	[ipv6]:port
//	stratum+tcp://[ipv6]:port
//
// Any "://" anywhere in raw triggers the scheme check, so "host/x://y" is
// rejected as an unsupported scheme.
func ParseEndpoint(raw string) (Endpoint, error) {
	base := raw
	if strings.Contains(raw, "://") {
		if len(raw) < len(Scheme) || !strings.EqualFold(raw[:len(Scheme)], Scheme) {
			return Endpoint{}, &ParseError{Op: "parse url", Input: raw, Err: ErrUnsupportedScheme}
		}
		base = raw[len(Scheme):]
	}

	if base == "" || base[0] == '/' {
		return Endpoint{}, &ParseError{Op: "parse url", Input: raw, Err: ErrEmptyHost}
	}

	if base[0] == '[' {
		ep, err := parseIPv6(base)
		if err != nil {
			return Endpoint{}, &ParseError{Op: "parse url", Input: raw, Err: err}
		}
		ep.URL = raw
		return ep, nil
	}

	ep := Endpoint{Host: base, Port: DefaultPort, URL: raw}
	if i := strings.IndexByte(base, ':'); i >= 0 {
		ep.Host = base[:i]
		ep.Port = parsePort(base[i+1:])
	}
	if ep.Host == "" {
		return Endpoint{}, &ParseError{Op: "parse url", Input: raw, Err: ErrEmptyHost}
	}
	return ep, nil
}

func parseIPv6(base string) (Endpoint, error) {
	end := strings.IndexByte(base, ']')
	if end < 0 {
		return Endpoint{}, ErrUnterminatedBracket
	}

	sep := strings.IndexByte(base[end:], ':')
	if sep < 0 {
		return Endpoint{}, ErrMissingPort
	}

	if end == 1 {
		return Endpoint{}, ErrEmptyHost
	}

	return Endpoint{
		Host: base[1:end],
		Port: parsePort(base[end+sep+1:]),
	}, nil
}

// parsePort reads a port the permissive way: leading whitespace and sign are
// allowed, parsing stops at the first non-digit, no digits yields 0 and the
// value is truncated to 16 bits.
func parsePort(s string) uint16 {
	s = strings.TrimLeft(s, " \t\n\v\f\r")

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	var n int64
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := int64(s[i] - '0')
		if n > (math.MaxInt64-d)/10 {
			// Out of range saturates like strtol: LONG_MAX or LONG_MIN.
			sat := int64(math.MaxInt64)
			if neg {
				sat = math.MinInt64
			}
			return uint16(sat)
		}
		n = n*10 + d
	}
	if neg {
		n = -n
	}
	return uint16(n)
}
