// storecopy copies saved queries between store backends, for example to
// back a redis or mongo library up into a local pebble directory.
//
//	storecopy -from redis:localhost:6379 -to pebble:backup/queries
//
// A backend is written as kind:target where kind is pebble, redis or mongo.
// The pebble store lives only in this command; the server and the library
// link the PostgreSQL parser, whose bundled xxhash symbols clash with
// pebble's zstd at link time.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/kanda123-lab/querygen/pkg/logger"
	"github.com/kanda123-lab/querygen/storage"
	"github.com/kanda123-lab/querygen/storage/mongokv"
	"github.com/kanda123-lab/querygen/storage/pebblekv"
	"github.com/kanda123-lab/querygen/storage/rediskv"
)

// Saved queries are stored under this key prefix by the library.
const savedQueryPrefix = "query:"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

type options struct {
	from            string
	to              string
	prefix          string
	redisPassword   string
	redisDB         int
	mongoDatabase   string
	mongoCollection string
	timeout         time.Duration
}

func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("storecopy", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.StringVar(&o.from, "from", "", "source backend (kind:target)")
	fs.StringVar(&o.to, "to", "", "destination backend (kind:target)")
	fs.StringVar(&o.prefix, "prefix", savedQueryPrefix, "copy only keys under this prefix")
	fs.StringVar(&o.redisPassword, "redis-password", "", "redis password")
	fs.IntVar(&o.redisDB, "redis-db", 0, "redis database number")
	fs.StringVar(&o.mongoDatabase, "mongo-database", "querygen", "mongo database")
	fs.StringVar(&o.mongoCollection, "mongo-collection", "queries", "mongo collection")
	fs.DurationVar(&o.timeout, "timeout", time.Minute, "overall deadline")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if o.from == "" || o.to == "" {
		fmt.Fprintln(stderr, "storecopy: -from and -to are required")
		return 2
	}

	log := logger.NewLogger("storecopy", "info")
	defer logger.Cleanup(log)

	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	src, err := openBackend(ctx, o.from, o)
	if err != nil {
		fmt.Fprintln(stderr, "storecopy:", err)
		return 1
	}
	defer src.Close()

	dst, err := openBackend(ctx, o.to, o)
	if err != nil {
		fmt.Fprintln(stderr, "storecopy:", err)
		return 1
	}
	defer dst.Close()

	n, err := copyEntries(ctx, src, dst, o.prefix)
	if err != nil {
		log.Error("copy failed", logger.Int("copied", n), logger.Error(err))
		return 1
	}
	log.Info("copy finished", logger.Int("copied", n), logger.String("from", o.from), logger.String("to", o.to))
	return 0
}

func openBackend(ctx context.Context, spec string, o options) (storage.StorageI, error) {
	kind, target, ok := strings.Cut(spec, ":")
	if !ok || target == "" {
		return nil, errors.Errorf("backend %q: want kind:target", spec)
	}
	switch kind {
	case "pebble":
		return pebblekv.Open(target)
	case "redis":
		return rediskv.Connect(ctx, target, o.redisPassword, o.redisDB)
	case "mongo":
		return mongokv.Connect(ctx, target, o.mongoDatabase, o.mongoCollection)
	default:
		return nil, errors.Errorf("backend %q: unknown kind %q", spec, kind)
	}
}

// copyEntries writes every entry of src under prefix into dst and returns
// how many were written before any error.
func copyEntries(ctx context.Context, src, dst storage.StorageI, prefix string) (int, error) {
	entries, err := src.List(ctx, prefix)
	if err != nil {
		return 0, errors.Wrap(err, "list source")
	}
	for i, entry := range entries {
		if err := dst.Set(ctx, entry.Key, entry.Value); err != nil {
			return i, errors.Wrapf(err, "write %q", entry.Key)
		}
	}
	return len(entries), nil
}
