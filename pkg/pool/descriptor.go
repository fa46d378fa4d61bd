package pool

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// KeepAliveTimeout is the keep-alive interval, in seconds, callers use when
// keep-alive is switched on.
const KeepAliveTimeout = 60

// Descriptor is the normalized description of one pool.
//
// A Descriptor is built and adjusted during startup and is read-only
// afterwards. It has no internal locking: callers that share one between
// goroutines must not mutate it while reads are in flight.
type Descriptor struct {
	endpoint    Endpoint
	credentials Credentials
	algorithm   Algorithm
	variant     Variant
	niceHash    bool
	keepAlive   int
}

// Fields are the discrete values NewFromFields builds a descriptor from.
type Fields struct {
	Host      string
	Port      uint16
	User      string
	Password  string
	KeepAlive int
	NiceHash  bool
	Variant   Variant
}

func newDefault() *Descriptor {
	return &Descriptor{
		endpoint:  Endpoint{Port: DefaultPort},
		algorithm: InvalidAlgorithm,
		variant:   VariantAuto,
	}
}

// New parses url into a descriptor. The returned descriptor is never nil: on
// error it is left in its default, invalid state.
func New(url string) (*Descriptor, error) {
	d := newDefault()
	if err := d.Parse(url); err != nil {
		return d, err
	}
	return d, nil
}

// NewFromFields builds a descriptor from already separated values. The URL is
// synthesized as host:port.
func NewFromFields(f Fields) *Descriptor {
	d := newDefault()
	d.endpoint = Endpoint{
		Host: f.Host,
		Port: f.Port,
		URL:  f.Host + ":" + strconv.Itoa(int(f.Port)),
	}
	d.credentials = Credentials{User: f.User, Password: f.Password}
	d.keepAlive = f.KeepAlive
	d.niceHash = f.NiceHash
	d.variant = f.Variant
	return d
}

// Parse replaces the endpoint with the one parsed from url. The endpoint is
// left untouched on error.
func (d *Descriptor) Parse(url string) error {
	ep, err := ParseEndpoint(url)
	if err != nil {
		return err
	}
	d.endpoint = ep
	return nil
}

func (d *Descriptor) Endpoint() Endpoint       { return d.endpoint }
func (d *Descriptor) Host() string             { return d.endpoint.Host }
func (d *Descriptor) Port() uint16             { return d.endpoint.Port }
func (d *Descriptor) URL() string              { return d.endpoint.URL }
func (d *Descriptor) User() string             { return d.credentials.User }
func (d *Descriptor) Password() string         { return d.credentials.Password }
func (d *Descriptor) Credentials() Credentials { return d.credentials }
func (d *Descriptor) Algorithm() Algorithm     { return d.algorithm }
func (d *Descriptor) NiceHash() bool           { return d.niceHash }
func (d *Descriptor) KeepAlive() int           { return d.keepAlive }

// IsValid reports whether a host has been set.
func (d *Descriptor) IsValid() bool {
	return d.endpoint.Host != ""
}

// Variant returns the variant to use, honoring algorithms that force one.
func (d *Descriptor) Variant() Variant {
	if v, ok := ForcedVariant(d.algorithm); ok {
		return v
	}
	return d.variant
}

// StoredVariant returns the configured variant without forced overrides.
func (d *Descriptor) StoredVariant() Variant {
	return d.variant
}

// SetUserpass sets user and password from "user:password". Credentials are
// unchanged on error.
func (d *Descriptor) SetUserpass(raw string) error {
	c, err := ParseUserpass(raw)
	if err != nil {
		return err
	}
	d.credentials = c
	return nil
}

func (d *Descriptor) SetUser(user string)         { d.credentials.User = user }
func (d *Descriptor) SetPassword(password string) { d.credentials.Password = password }
func (d *Descriptor) SetAlgorithm(a Algorithm)    { d.algorithm = a }
func (d *Descriptor) SetKeepAlive(seconds int)    { d.keepAlive = seconds }
func (d *Descriptor) SetNiceHash(on bool)         { d.niceHash = on }

// SetAlgorithmName resolves name through t and stores the result, which may
// be InvalidAlgorithm. A nil t resolves against a table with every optional
// algorithm enabled and no diagnostics.
func (d *Descriptor) SetAlgorithmName(t *Table, name string) Algorithm {
	if t == nil {
		t = NewTable(nil, OptionalAlgorithms...)
	}
	d.algorithm = t.Resolve(name)
	return d.algorithm
}

// SetVariant accepts -1 (auto), 0 or 1.
func (d *Descriptor) SetVariant(v int) error {
	if !Variant(v).valid() {
		return fmt.Errorf("%w: %d", ErrInvalidVariant, v)
	}
	d.variant = Variant(v)
	return nil
}

// Adjust fills in defaultAlgorithm when none is set and applies the
// host-based overrides. Invalid descriptors are left alone.
func (d *Descriptor) Adjust(defaultAlgorithm Algorithm) {
	if !d.IsValid() {
		return
	}

	if d.algorithm == InvalidAlgorithm {
		d.algorithm = defaultAlgorithm
	}

	// Containment, not suffix match: "x.nicehash.com.example" also matches.
	if strings.Contains(d.endpoint.Host, ".nicehash.com") {
		d.keepAlive = 0
		d.niceHash = true
	}
	if strings.Contains(d.endpoint.Host, ".minergate.com") {
		d.keepAlive = 0
	}
}

// Equal compares every field, including the raw URL and the stored variant.
// "pool.com" and "pool.com:3333" are therefore not equal.
func (d *Descriptor) Equal(other *Descriptor) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.niceHash == other.niceHash &&
		d.keepAlive == other.keepAlive &&
		d.endpoint == other.endpoint &&
		d.algorithm == other.algorithm &&
		d.credentials == other.credentials &&
		d.variant == other.variant
}

type descriptorJSON struct {
	URL       string `json:"url"`
	Host      string `json:"host"`
	Port      uint16 `json:"port"`
	User      string `json:"user"`
	Algorithm string `json:"algo"`
	Variant   string `json:"variant"`
	NiceHash  bool   `json:"nicehash"`
	KeepAlive int    `json:"keepalive"`
}

// MarshalJSON renders the resolved view. The password is omitted. Algorithm
// names are the canonical ones regardless of any table; callers that need
// enablement checks go through Table.Name first.
func (d *Descriptor) MarshalJSON() ([]byte, error) {
	algo := "invalid"
	if d.algorithm.known() {
		algo = algorithmNames[d.algorithm].short
	}
	return json.Marshal(descriptorJSON{
		URL:       d.endpoint.URL,
		Host:      d.endpoint.Host,
		Port:      d.endpoint.Port,
		User:      d.credentials.User,
		Algorithm: algo,
		Variant:   d.Variant().String(),
		NiceHash:  d.niceHash,
		KeepAlive: d.keepAlive,
	})
}
