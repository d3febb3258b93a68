package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/medidesk/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":3000")
//	-g string   gRPC bind address (e.g. ":50051")
//	-d string   PostgreSQL DSN for the pooled path
//	-D string   PostgreSQL DSN for the direct path
//	-s string   session signing secret
//	-e string   environment: development | production
//	-m          run schema migrations on startup
//	-l string   log level
//	-t int      store timeout, seconds
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-D", "-s", "-e", "-m", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN (pooled path)")
	fs.StringVar(&config.DirectDatabaseDSN, "D", config.DirectDatabaseDSN, "database DSN (direct path)")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "session signing secret")
	fs.StringVar(&config.Environment, "e", config.Environment, "environment (development|production)")
	fs.BoolVar(&config.RunMigrations, "m", config.RunMigrations, "run migrations on startup")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	storeTimeout := fs.Int("t", int(config.StoreTimeout.Seconds()), "store timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t overrides earlier layers only when given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.StoreTimeout = time.Duration(*storeTimeout) * time.Second
		}
	})
}
