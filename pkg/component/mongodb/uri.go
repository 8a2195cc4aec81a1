package mongodb

import (
	"fmt"
	"net/url"
	"strings"

	options "github.com/kart-io/datanikah/pkg/options/mongodb"
)

// BuildURI builds a MongoDB URI from options.
// An explicit URI wins; otherwise one is assembled from host, port and credentials.
func BuildURI(opts *options.Options) string {
	if opts.URI != "" {
		return opts.URI
	}

	var uri strings.Builder
	uri.WriteString("mongodb://")

	if opts.Username != "" {
		uri.WriteString(url.QueryEscape(opts.Username))
		if opts.Password != "" {
			uri.WriteString(":")
			uri.WriteString(url.QueryEscape(opts.Password))
		}
		uri.WriteString("@")
	}

	uri.WriteString(opts.Host)
	if opts.Port != 0 {
		uri.WriteString(fmt.Sprintf(":%d", opts.Port))
	}
	uri.WriteString("/")
	uri.WriteString(opts.Database)

	params := url.Values{}
	if opts.Username != "" && opts.AuthSource != "" {
		params.Add("authSource", opts.AuthSource)
	}
	if opts.ReplicaSet != "" {
		params.Add("replicaSet", opts.ReplicaSet)
	}
	if opts.Direct {
		params.Add("directConnection", "true")
	}
	if len(params) > 0 {
		uri.WriteString("?")
		uri.WriteString(params.Encode())
	}

	return uri.String()
}
