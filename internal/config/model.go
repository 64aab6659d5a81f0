// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                             – dotenv values,
//   • `conf/global.yaml`                          – primary static file,
//   • `PRESENTER_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables for the demo server.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
}

//
// Log section
//

// Log controls the zap logger.  Tee mirrors JSON file output to stdout.
type Log struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	Tee   bool   `koanf:"tee"`
}

//
// Inline section
//

// Inline tunes the per-worker template caches.
//
// ScratchRoot is the parent of every worker scratch directory; empty
// means the platform temp dir.  MaxEntries optionally caps compiled
// templates per worker (0, the default, is unbounded).  MaxIdleWorkers
// caps how many released workers keep their cache (and scratch directory)
// for reuse.  IdleTTL closes idle workers nobody has checked out for that
// long; zero keeps them forever.
type Inline struct {
	ScratchRoot    string        `koanf:"scratch_root"`
	MaxEntries     int           `koanf:"max_entries"      validate:"gte=0"`
	MaxIdleWorkers int           `koanf:"max_idle_workers" validate:"gte=0"`
	IdleTTL        time.Duration `koanf:"idle_ttl"         validate:"gte=0"`
}

//
// GeoIP section
//

// GeoIP points at an optional GeoLite2-City database used by the request
// info middleware.  Empty disables lookups.
type GeoIP struct {
	Database string `koanf:"database" validate:"omitempty,file"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // PRESENTER_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads.
type Config struct {
	HTTP   HTTP   `koanf:"http"`
	Log    Log    `koanf:"log"`
	Inline Inline `koanf:"inline"`
	GeoIP  GeoIP  `koanf:"geoip"`
	Paths  Paths  `koanf:"-"` // not loaded from config files
}
