package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses args into a config holding only the values set on the
// command line.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-driver storage driver (file, sqlite, postgres)
//	-d storage DSN
//	-tree tree path inside the store
//	-c/-config json file path with configs
//	-log-level zerolog level name
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-push-url push service endpoint
//	-push-timeout push request timeout
//	-job-timeout queue job timeout
//	-api-key push API key
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-live-sync", flag.ContinueOnError)

	var serverAddress NetAddress
	var driver, dsn, treePath string
	var jsonConfigPath string
	var logLevel string
	var requestTimeout, pushTimeout, jobTimeout time.Duration
	var pushURL, apiKey string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&driver, "driver", "", "Storage driver: file, sqlite or postgres")
	fs.StringVar(&dsn, "d", "", "Storage DSN")
	fs.StringVar(&treePath, "tree", "", "Tree path inside the store")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&pushURL, "push-url", "", "Push service endpoint")
	fs.DurationVar(&pushTimeout, "push-timeout", 0, "Push request timeout")
	fs.DurationVar(&jobTimeout, "job-timeout", 0, "Queue job timeout")
	fs.StringVar(&apiKey, "api-key", "", "Push API key")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Storage: Storage{
			Driver:   driver,
			DSN:      dsn,
			TreePath: treePath,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			PushURL:        pushURL,
			RequestTimeout: pushTimeout,
		},
		Workers: Workers{
			JobTimeout: jobTimeout,
		},
		Push: Push{
			APIKey: apiKey,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(strings.Trim(host, "[]")); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
