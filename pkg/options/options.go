// Package options defines the options contract shared by datanikah components
// and helpers for composing flag names.
package options

import (
	"strings"

	"github.com/spf13/pflag"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// Join concatenates prefixes with "." separator.
// If the result is non-empty, it appends a trailing ".".
// This is used to build flag names like "mongodb.host" or "store.mongodb.host".
func Join(prefixes ...string) string {
	joined := strings.Join(prefixes, ".")
	if joined != "" {
		joined += "."
	}
	return joined
}

// IOptions defines methods to implement a generic options.
type IOptions interface {
	// Validate validates all the required options.
	Validate() []error

	// AddFlags adds flags related to given flagset.
	AddFlags(fs *pflag.FlagSet, prefixes ...string)
}

// Aggregate runs Validate on every option set and folds the results into a
// single error. Nil option sets are skipped.
func Aggregate(opts ...IOptions) error {
	var errs []error
	for _, o := range opts {
		if o == nil {
			continue
		}
		errs = append(errs, o.Validate()...)
	}
	return utilerrors.NewAggregate(errs)
}
