package cache

import (
	"context"
	"fmt"
	"strings"
)

// Backend names accepted by Open besides URLs.
const (
	BackendFile = "file"
	BackendNone = "none"
)

// Open returns the cache described by spec:
//
//	""/"file"              FileCache rooted at dir
//	"none"/"off"           NullCache
//	"redis://..."          RedisCache (also rediss://)
//	"mongodb://..."        MongoCache (also mongodb+srv://)
func Open(ctx context.Context, spec, dir string) (Cache, error) {
	switch s := strings.TrimSpace(spec); {
	case s == "" || s == BackendFile:
		if dir == "" {
			return nil, fmt.Errorf("%w: file cache needs a directory", ErrUnknownBackend)
		}
		fc, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case s == BackendNone || s == "off":
		return NewNullCache(), nil
	case strings.HasPrefix(s, "redis://"), strings.HasPrefix(s, "rediss://"):
		rc, err := NewRedisCache(ctx, s)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case strings.HasPrefix(s, "mongodb://"), strings.HasPrefix(s, "mongodb+srv://"):
		mc, err := NewMongoCache(ctx, s)
		if err != nil {
			return nil, err
		}
		return mc, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, spec)
	}
}

// Describe returns a log-safe label for spec, with any credentials removed.
func Describe(spec string) string {
	s := strings.TrimSpace(spec)
	if s == "" {
		return BackendFile
	}
	scheme, rest, ok := strings.Cut(s, "://")
	if !ok {
		return s
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = rest[at+1:]
	}
	if i := strings.IndexAny(rest, "/?"); i >= 0 {
		rest = rest[:i]
	}
	return scheme + "://" + rest
}
