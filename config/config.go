package config

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/BurntSushi/toml"
)

// defaultConfig is the default configuration for this project
var defaultConfig = config{
	UserAgent: "resonator/1.0",
	Providers: providers{
		Storage: "mariadb",
	},
	Database: database{
		DriverName: "mysql",
		DSN:        "",
	},
	Website: website{
		ListenAddr: ":9001",
	},
	Ingest: ingest{
		TmpDir:         os.TempDir(),
		CodegenPath:    "echoprint-codegen",
		MaxDuration:    600,
		WorkerInterval: Duration(time.Second * 10),
	},
	S3: s3{
		Region: "us-east-1",
		Bucket: "vacay",
		Folder: "development",
	},
}

// config represents a full configuration file of this project, each tool part
// of this repository share the same configuration file
type config struct {
	// UserAgent to use when making HTTP requests
	UserAgent string
	// Providers contains the names of the providers to use
	Providers providers
	// Database contains the configuration to connect to the SQL database
	Database database

	Website website
	Ingest  ingest
	S3      s3
}

// providers is the configuration for which implementations to use
type providers struct {
	// Storage is the name of the storage implementation to use
	Storage string
}

// database is the configuration for the database/sql package
type database struct {
	// DriverName to pass to database/sql
	DriverName string
	// DSN to pass to database/sql, format depends on driver used
	DSN string
}

// website contains all the fields only relevant to the HTTP front
type website struct {
	// ListenAddr is the address for the HTTP API
	ListenAddr string
}

// ingest contains all the fields only relevant to the ingest worker
type ingest struct {
	// TmpDir is the directory to place downloaded audio and codegen
	// output in
	TmpDir string
	// CodegenPath is the path of the fingerprint generator executable
	CodegenPath string
	// MaxDuration is the maximum duration, in seconds, of items the
	// worker will pick up
	MaxDuration int
	// WorkerInterval is the wait period between worker attempts when no
	// work is available
	WorkerInterval Duration
}

// s3 contains the object storage configuration for the ingest worker
type s3 struct {
	Region string
	Key    string
	Secret string
	Bucket string
	// Folder is the key prefix audio items are stored under
	Folder string
}

// errs is a slice of multiple config-file errors
type errs []error

func (e errs) Error() string {
	s := "config: error opening files:"
	if len(e) == 1 {
		return s + " " + e[0].Error()
	}

	for _, err := range e {
		s += "\n" + err.Error()
	}

	return s
}

// Config is a type-safe wrapper around the config type
type Config struct {
	config *atomic.Value
}

// Loader is a function that can load a configuration from somewhere
type Loader func() (Config, error)

// LoadFile loads a configuration file from the first filename given that
// exists, empty filenames are skipped
func LoadFile(filenames ...string) (Config, error) {
	var f *os.File
	var err error
	var errored errs

	for _, filename := range filenames {
		if filename == "" {
			continue
		}

		f, err = os.Open(filename)
		if err == nil {
			break
		}

		errored = append(errored, err)
	}

	if f == nil {
		if len(errored) > 0 {
			return newConfig(defaultConfig), errored
		}
		// no files were given, load defaults
		return newConfig(defaultConfig), nil
	}
	defer f.Close()

	return Load(f)
}

// Load loads a configuration file from the reader given, it expects TOML as input
func Load(r io.Reader) (Config, error) {
	var c = defaultConfig
	m, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return Config{}, err
	}

	// print out keys that were found but don't have a destination
	undec := m.Undecoded()
	if len(undec) > 0 {
		fmt.Println(undec)
	}

	return newConfig(c), nil
}

func newConfig(c config) Config {
	ac := Config{new(atomic.Value)}
	ac.StoreConf(c)
	return ac
}

// Conf returns the configuration stored inside
//
// NOTE: Conf returns a shallow-copy of the config value stored inside; so do not edit
// any slices or maps that might be inside
func (c Config) Conf() config {
	return c.config.Load().(config)
}

// StoreConf stores the configuration passed
func (c Config) StoreConf(new config) {
	c.config.Store(new)
}

// Save writes the configuration to w in TOML format
func (c Config) Save(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c.Conf())
}

// Duration is a time.Duration that supports Text(Un)Marshaler
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	n, err := time.ParseDuration(string(text))
	*d = Duration(n)
	return err
}
