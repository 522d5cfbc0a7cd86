package config

import (
	"errors"
	"flag"
	"io"
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

// parseFlags parses the server flags in args (without the program name).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-env deployment environment (production hides internal errors)
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-audience token audience
//	-token-duration token duration (e.g., "168h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-rate-limit-max requests admitted per window
//	-rate-limit-window sliding window length
//	-rate-limit-backend memory or redis
//	-redis-address redis host:port for the redis backend
//	-trust-forwarded-for identify callers by X-Forwarded-For
//	-retry-max retries after the first storage attempt
//	-retry-base-delay delay before the first retry
func parseFlags(args []string) (*StructuredConfig, error) {
	var (
		serverAddress     NetAddress
		databaseDSN       string
		jsonConfigPath    string
		environment       string
		tokenSignKey      string
		tokenIssuer       string
		tokenAudience     string
		tokenDuration     time.Duration
		requestTimeout    time.Duration
		rateLimitMax      int
		rateLimitWindow   time.Duration
		rateLimitBackend  string
		redisAddress      string
		trustForwardedFor bool
		retryMax          int
		retryBaseDelay    time.Duration
	)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&environment, "env", "", "Deployment environment")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.StringVar(&tokenAudience, "token-audience", "", "Token audience")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 168h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.IntVar(&rateLimitMax, "rate-limit-max", 0, "Requests admitted per window")
	fs.DurationVar(&rateLimitWindow, "rate-limit-window", 0, "Rate limit window (e.g., 1m)")
	fs.StringVar(&rateLimitBackend, "rate-limit-backend", "", "Rate limit store: memory or redis")
	fs.StringVar(&redisAddress, "redis-address", "", "Redis address host:port")
	fs.BoolVar(&trustForwardedFor, "trust-forwarded-for", false, "Identify callers by X-Forwarded-For")
	fs.IntVar(&retryMax, "retry-max", 0, "Retries after the first storage attempt")
	fs.DurationVar(&retryBaseDelay, "retry-base-delay", 0, "Delay before the first retry")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenAudience: tokenAudience,
			TokenDuration: tokenDuration,
			Environment:   environment,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		RateLimit: RateLimit{
			MaxRequests:       rateLimitMax,
			Window:            rateLimitWindow,
			Backend:           rateLimitBackend,
			RedisAddress:      redisAddress,
			TrustForwardedFor: trustForwardedFor,
		},
		Retry: Retry{
			MaxRetries: retryMax,
			BaseDelay:  retryBaseDelay,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress, or an
// empty string when neither part is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	host, portStr, found := strings.Cut(s, ":")
	if !found || strings.Contains(portStr, ":") {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}

	if host != "localhost" && host != "" {
		if net.ParseIP(host) == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
