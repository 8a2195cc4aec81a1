package datanikah

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/kart-io/datanikah/pkg/options"
	httpopts "github.com/kart-io/datanikah/pkg/options/http"
	logopts "github.com/kart-io/datanikah/pkg/options/logger"
	mongoopts "github.com/kart-io/datanikah/pkg/options/mongodb"
	redisopts "github.com/kart-io/datanikah/pkg/options/redis"
	jwtopts "github.com/kart-io/datanikah/pkg/security/auth/jwt"
)

// Store drivers.
const (
	DriverMemory  = "memory"
	DriverMongoDB = "mongodb"
)

// Options contains all datanikah server options.
type Options struct {
	HTTP      *httpopts.Options  `json:"http" mapstructure:"http"`
	Log       *logopts.Options   `json:"log" mapstructure:"log"`
	MongoDB   *mongoopts.Options `json:"mongodb" mapstructure:"mongodb"`
	Redis     *redisopts.Options `json:"redis" mapstructure:"redis"`
	JWT       *jwtopts.Options   `json:"jwt" mapstructure:"jwt"`
	Store     *StoreOptions      `json:"store" mapstructure:"store"`
	Admin     *AdminOptions      `json:"admin" mapstructure:"admin"`
	Chat      *ChatOptions       `json:"chat" mapstructure:"chat"`
	Dashboard *DashboardOptions  `json:"dashboard" mapstructure:"dashboard"`
	Recent    *RecentOptions     `json:"recent" mapstructure:"recent"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		HTTP:      httpopts.NewOptions(),
		Log:       logopts.NewOptions(),
		MongoDB:   mongoopts.NewOptions(),
		Redis:     redisopts.NewOptions(),
		JWT:       jwtopts.NewOptions(),
		Store:     &StoreOptions{Driver: DriverMongoDB},
		Admin:     &AdminOptions{Name: "Administrator"},
		Chat:      &ChatOptions{SessionTTL: 30 * time.Minute, Region: "Kota Gorontalo"},
		Dashboard: &DashboardOptions{CacheTTL: 10 * time.Minute},
		Recent:    &RecentOptions{Limit: 5, PollInterval: 5 * time.Second},
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.HTTP.AddFlags(fs)
	o.Log.AddFlags(fs)
	o.MongoDB.AddFlags(fs)
	o.Redis.AddFlags(fs)
	o.JWT.AddFlags(fs)
	o.Store.AddFlags(fs)
	o.Admin.AddFlags(fs)
	o.Chat.AddFlags(fs)
	o.Dashboard.AddFlags(fs)
	o.Recent.AddFlags(fs)
}

// Complete completes the options.
func (o *Options) Complete() error {
	if err := o.MongoDB.Complete(); err != nil {
		return err
	}
	if err := o.Redis.Complete(); err != nil {
		return err
	}
	if err := o.JWT.Complete(); err != nil {
		return err
	}
	o.Admin.Complete()
	return nil
}

// Validate validates the options.
func (o *Options) Validate() error {
	var mongo options.IOptions
	if o.Store.Driver == DriverMongoDB {
		mongo = o.MongoDB
	}
	var redis options.IOptions
	if o.Redis.Enabled {
		redis = o.Redis
	}
	return options.Aggregate(o.HTTP, o.Log, mongo, redis, o.JWT, o.Store, o.Chat, o.Dashboard, o.Recent)
}

// StoreOptions selects the record store backend.
type StoreOptions struct {
	Driver string `json:"driver" mapstructure:"driver"`
}

func (o *StoreOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Driver, options.Join(prefixes...)+"store.driver", o.Driver, "Record store backend (mongodb|memory)")
}

func (o *StoreOptions) Validate() []error {
	switch o.Driver {
	case DriverMongoDB, DriverMemory:
		return nil
	}
	return []error{fmt.Errorf("store.driver must be one of %s, %s", DriverMongoDB, DriverMemory)}
}

// AdminOptions seeds the first administrator on startup.
// Nothing is created when Email or Password is empty.
type AdminOptions struct {
	Email    string `json:"email" mapstructure:"email"`
	Password string `json:"-" mapstructure:"password"`
	Name     string `json:"name" mapstructure:"name"`
}

func (o *AdminOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	p := options.Join(prefixes...) + "admin."
	fs.StringVar(&o.Email, p+"email", o.Email, "Email of the administrator created on startup")
	fs.StringVar(&o.Password, p+"password", o.Password, "Password of the seeded administrator (prefer ADMIN_PASSWORD)")
	fs.StringVar(&o.Name, p+"name", o.Name, "Display name of the seeded administrator")
}

// Complete reads the password from ADMIN_PASSWORD when unset.
func (o *AdminOptions) Complete() {
	if o.Password == "" {
		o.Password = os.Getenv("ADMIN_PASSWORD")
	}
}

// ChatOptions configures the assistant.
type ChatOptions struct {
	SessionTTL time.Duration `json:"session-ttl" mapstructure:"session-ttl"`
	// Region names the area covered by the data in assistant texts.
	Region string `json:"region" mapstructure:"region"`
}

func (o *ChatOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	p := options.Join(prefixes...) + "chat."
	fs.DurationVar(&o.SessionTTL, p+"session-ttl", o.SessionTTL, "Idle lifetime of a chat session")
	fs.StringVar(&o.Region, p+"region", o.Region, "Region named in assistant answers")
}

func (o *ChatOptions) Validate() []error {
	if o.SessionTTL <= 0 {
		return []error{fmt.Errorf("chat.session-ttl must be positive")}
	}
	return nil
}

// DashboardOptions configures the statistics cache.
type DashboardOptions struct {
	CacheTTL time.Duration `json:"cache-ttl" mapstructure:"cache-ttl"`
}

func (o *DashboardOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.DurationVar(&o.CacheTTL, options.Join(prefixes...)+"dashboard.cache-ttl", o.CacheTTL, "Lifetime of cached yearly statistics")
}

func (o *DashboardOptions) Validate() []error {
	if o.CacheTTL < 0 {
		return []error{fmt.Errorf("dashboard.cache-ttl cannot be negative")}
	}
	return nil
}

// RecentOptions configures the recent uploads feed.
type RecentOptions struct {
	Limit        int           `json:"limit" mapstructure:"limit"`
	PollInterval time.Duration `json:"poll-interval" mapstructure:"poll-interval"`
}

func (o *RecentOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	p := options.Join(prefixes...) + "recent."
	fs.IntVar(&o.Limit, p+"limit", o.Limit, "Number of records in the recent uploads list")
	fs.DurationVar(&o.PollInterval, p+"poll-interval", o.PollInterval, "Polling interval of the recent uploads stream")
}

func (o *RecentOptions) Validate() []error {
	var errs []error
	if o.Limit <= 0 {
		errs = append(errs, fmt.Errorf("recent.limit must be positive"))
	}
	if o.PollInterval < time.Second {
		errs = append(errs, fmt.Errorf("recent.poll-interval must be at least 1s"))
	}
	return errs
}
