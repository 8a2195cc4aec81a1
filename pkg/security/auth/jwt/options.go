package jwt

import (
	"fmt"
	"os"
	"time"

	"github.com/kart-io/datanikah/pkg/options"
	"github.com/spf13/pflag"
)

const (
	// DefaultSigningMethod is the default JWT signing algorithm.
	DefaultSigningMethod = "HS256"

	// DefaultExpired is the default token expiration time.
	DefaultExpired = 8 * time.Hour

	// DefaultIssuer is the default token issuer.
	DefaultIssuer = "datanikah"

	// MinKeyLength is the minimum HMAC key length.
	MinKeyLength = 32
)

// SupportedSigningMethods contains the accepted HMAC algorithms.
var SupportedSigningMethods = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

var _ options.IOptions = (*Options)(nil)

// Options contains JWT configuration.
//
//	jwt:
//	  key: "${JWT_KEY}"
//	  expired: 8h
type Options struct {
	// Key is the HMAC secret. Falls back to JWT_KEY.
	Key           string        `json:"-" mapstructure:"key"`
	SigningMethod string        `json:"signing-method" mapstructure:"signing-method"`
	Expired       time.Duration `json:"expired" mapstructure:"expired"`
	Issuer        string        `json:"issuer" mapstructure:"issuer"`
	Audience      []string      `json:"audience" mapstructure:"audience"`
}

// NewOptions creates a new Options with default values.
func NewOptions() *Options {
	return &Options{
		SigningMethod: DefaultSigningMethod,
		Expired:       DefaultExpired,
		Issuer:        DefaultIssuer,
	}
}

// Complete fills the key from the environment.
func (o *Options) Complete() error {
	if o.Key == "" {
		o.Key = os.Getenv("JWT_KEY")
	}
	return nil
}

// Validate validates the JWT options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if !SupportedSigningMethods[o.SigningMethod] {
		errs = append(errs, fmt.Errorf("jwt.signing-method %q is not supported", o.SigningMethod))
	}
	if len(o.Key) < MinKeyLength {
		errs = append(errs, fmt.Errorf("jwt.key must be at least %d characters", MinKeyLength))
	}
	if o.Expired <= 0 {
		errs = append(errs, fmt.Errorf("jwt.expired must be positive"))
	}
	return errs
}

// AddFlags adds flags for JWT options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	prefix := options.Join(prefixes...) + "jwt."

	fs.StringVar(&o.Key, prefix+"key", o.Key, "HMAC key used to sign tokens (or set JWT_KEY).")
	fs.StringVar(&o.SigningMethod, prefix+"signing-method", o.SigningMethod, "Signing algorithm: HS256, HS384 or HS512.")
	fs.DurationVar(&o.Expired, prefix+"expired", o.Expired, "Token lifetime.")
	fs.StringVar(&o.Issuer, prefix+"issuer", o.Issuer, "Token issuer (iss).")
	fs.StringSliceVar(&o.Audience, prefix+"audience", o.Audience, "Token audience (aud).")
}
