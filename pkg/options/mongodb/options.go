// Package mongodb provides MongoDB connection options.
package mongodb

import (
	"fmt"
	"os"
	"time"

	"github.com/kart-io/datanikah/pkg/options"
	"github.com/spf13/pflag"
)

var _ options.IOptions = (*Options)(nil)

// redactedPassword is the placeholder used when printing passwords.
const redactedPassword = "[REDACTED]"

// Options defines configuration options for MongoDB.
type Options struct {
	// Connection
	URI        string `json:"uri" mapstructure:"uri"`           // MongoDB URI (mongodb://...)
	Host       string `json:"host" mapstructure:"host"`         // Host (if not using URI)
	Port       int    `json:"port" mapstructure:"port"`         // Port (default 27017)
	Username   string `json:"username" mapstructure:"username"` // Username
	Password   string `json:"-" mapstructure:"password"`        // Password (use env var)
	Database   string `json:"database" mapstructure:"database"` // Database name
	AuthSource string `json:"auth-source" mapstructure:"auth-source"`
	ReplicaSet string `json:"replica-set" mapstructure:"replica-set"`
	Direct     bool   `json:"direct" mapstructure:"direct"`

	// Connection Pool
	MaxPoolSize     uint64        `json:"max-pool-size" mapstructure:"max-pool-size"`
	MinPoolSize     uint64        `json:"min-pool-size" mapstructure:"min-pool-size"`
	MaxConnIdleTime time.Duration `json:"max-conn-idle-time" mapstructure:"max-conn-idle-time"`

	// Timeouts
	ConnectTimeout         time.Duration `json:"connect-timeout" mapstructure:"connect-timeout"`
	SocketTimeout          time.Duration `json:"socket-timeout" mapstructure:"socket-timeout"`
	ServerSelectionTimeout time.Duration `json:"server-selection-timeout" mapstructure:"server-selection-timeout"`
}

// NewOptions creates a new Options object with default values.
func NewOptions() *Options {
	return &Options{
		Host:                   "127.0.0.1",
		Port:                   27017,
		Database:               "datanikah",
		AuthSource:             "admin",
		MaxPoolSize:            50,
		MinPoolSize:            5,
		MaxConnIdleTime:        5 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		SocketTimeout:          30 * time.Second,
		ServerSelectionTimeout: 10 * time.Second,
	}
}

// String returns a string representation with password redacted.
func (o *Options) String() string {
	password := redactedPassword
	if o.Password == "" {
		password = ""
	}
	return fmt.Sprintf("MongoDB{host=%s, port=%d, user=%s, password=%s, database=%s}",
		o.Host, o.Port, o.Username, password, o.Database)
}

// Complete reads the password from MONGODB_PASSWORD when it was not configured.
func (o *Options) Complete() error {
	if o.Password == "" {
		o.Password = os.Getenv("MONGODB_PASSWORD")
	}
	return nil
}

// Validate checks if the options are valid.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.URI == "" {
		if o.Host == "" {
			errs = append(errs, fmt.Errorf("mongodb.host is required when mongodb.uri is empty"))
		}
		if o.Port <= 0 || o.Port > 65535 {
			errs = append(errs, fmt.Errorf("mongodb.port must be between 1 and 65535"))
		}
	}
	if o.Database == "" {
		errs = append(errs, fmt.Errorf("mongodb.database cannot be empty"))
	}
	if o.MinPoolSize > o.MaxPoolSize && o.MaxPoolSize > 0 {
		errs = append(errs, fmt.Errorf("mongodb.min-pool-size cannot exceed mongodb.max-pool-size"))
	}
	return errs
}

// AddFlags adds flags for MongoDB options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	p := options.Join(prefixes...) + "mongodb."
	fs.StringVar(&o.URI, p+"uri", o.URI, "MongoDB URI (mongodb://...). Overrides host/port when set.")
	fs.StringVar(&o.Host, p+"host", o.Host, "MongoDB service host address.")
	fs.IntVar(&o.Port, p+"port", o.Port, "MongoDB service port.")
	fs.StringVar(&o.Username, p+"username", o.Username, "Username for access to mongodb service.")
	fs.StringVar(&o.Password, p+"password", o.Password, "Password for access to mongodb (prefer MONGODB_PASSWORD).")
	fs.StringVar(&o.Database, p+"database", o.Database, "Database holding marriage records and users.")
	fs.StringVar(&o.AuthSource, p+"auth-source", o.AuthSource, "MongoDB authentication source.")
	fs.StringVar(&o.ReplicaSet, p+"replica-set", o.ReplicaSet, "MongoDB replica set name.")
	fs.BoolVar(&o.Direct, p+"direct", o.Direct, "MongoDB direct connection.")
	fs.Uint64Var(&o.MaxPoolSize, p+"max-pool-size", o.MaxPoolSize, "Maximum number of connections in the pool.")
	fs.Uint64Var(&o.MinPoolSize, p+"min-pool-size", o.MinPoolSize, "Minimum number of connections in the pool.")
	fs.DurationVar(&o.MaxConnIdleTime, p+"max-conn-idle-time", o.MaxConnIdleTime, "Maximum connection idle time.")
	fs.DurationVar(&o.ConnectTimeout, p+"connect-timeout", o.ConnectTimeout, "Timeout for connection.")
	fs.DurationVar(&o.SocketTimeout, p+"socket-timeout", o.SocketTimeout, "Timeout for socket operations.")
	fs.DurationVar(&o.ServerSelectionTimeout, p+"server-selection-timeout", o.ServerSelectionTimeout, "Timeout for server selection.")
}
