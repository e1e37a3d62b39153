package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tichlinh-png/trace-worksheet/pkg/cache"
	"github.com/tichlinh-png/trace-worksheet/pkg/pipeline"
	"github.com/tichlinh-png/trace-worksheet/pkg/server"
)

// Environment variables read by "serve" when the matching flag is unset.
const (
	envAddr          = "TRACESHEET_ADDR"
	envRedisAddr     = "TRACESHEET_REDIS_ADDR"
	envRedisPassword = "TRACESHEET_REDIS_PASSWORD"
	envRedisDB       = "TRACESHEET_REDIS_DB"
)

// redisKeyPrefix scopes every key so the database can be shared.
const redisKeyPrefix = appName + ":"

type serveOpts struct {
	server        server.Config
	redis         cache.RedisConfig
	cacheSize     int
	maxWorksheets int
}

func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the worksheet HTTP API",
		Long: `Run the worksheet HTTP API.

Created worksheets are kept in memory unless --redis-addr is given, in which
case they are stored in Redis and shared by every instance using it.`,
		Example: `  tracesheet serve --addr :8080
  TRACESHEET_REDIS_ADDR=localhost:6379 tracesheet serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			var (
				artifacts cache.Cache
				store     cache.Cache
				keyer     = cache.NewDefaultKeyer()
			)
			if opts.redis.Addr != "" {
				rc, err := cache.NewRedisCache(ctx, opts.redis)
				if err != nil {
					return err
				}
				artifacts, store = rc, rc
				keyer = cache.NewScopedKeyer(keyer, redisKeyPrefix)
				logger.Info("using redis store", "addr", opts.redis.Addr, "db", opts.redis.DB)
			} else {
				artifacts = cache.NewMemoryCache(opts.cacheSize)
				store = cache.NewMemoryCache(opts.maxWorksheets)
				logger.Info("using memory store", "cache_entries", opts.cacheSize, "max_worksheets", opts.maxWorksheets)
			}

			runner := pipeline.NewRunner(artifacts, keyer, logger)
			defer runner.Close()

			srv := server.New(opts.server, runner, store, keyer, logger)
			return srv.Run(ctx)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.server.Addr, "addr", envOr(envAddr, server.DefaultAddr), "listen address (env "+envAddr+")")
	flags.DurationVar(&opts.server.RequestTimeout, "request-timeout", server.DefaultRequestTimeout, "per-request timeout")
	flags.DurationVar(&opts.server.ShutdownTimeout, "shutdown-timeout", server.DefaultShutdownTimeout, "graceful shutdown timeout")
	flags.DurationVar(&opts.server.ShareTTL, "ttl", cache.TTLShare, "how long created worksheets stay available")
	flags.Int64Var(&opts.server.MaxBodyBytes, "max-body", server.DefaultMaxBodyBytes, "maximum request body in bytes")
	flags.IntVar(&opts.server.MaxEntries, "max-entries", server.DefaultMaxEntries, "maximum words per request")
	flags.IntVar(&opts.cacheSize, "cache-size", 1024, "in-memory render cache capacity in entries (0 = unbounded)")
	flags.IntVar(&opts.maxWorksheets, "max-worksheets", 4096, "in-memory capacity for created worksheets (0 = unbounded)")
	flags.StringVar(&opts.redis.Addr, "redis-addr", os.Getenv(envRedisAddr), "redis address; enables the redis store (env "+envRedisAddr+")")
	flags.StringVar(&opts.redis.Password, "redis-password", os.Getenv(envRedisPassword), "redis password (env "+envRedisPassword+")")
	flags.IntVar(&opts.redis.DB, "redis-db", envInt(envRedisDB, 0), "redis database number (env "+envRedisDB+")")

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}
