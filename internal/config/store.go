package config

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Store giữ snapshot config hiện tại.
// Snapshot là immutable: Reload build một *Config mới rồi swap pointer,
// reader đang giữ snapshot cũ không bị ảnh hưởng.
type Store struct {
	current  atomic.Pointer[Config]
	reloadMu sync.Mutex

	envFiles []string
	loader   func() (*Config, error)
}

// NewStore loads the initial snapshot. envFiles are re-read on every Reload;
// missing files are not an error.
func NewStore(envFiles ...string) (*Store, error) {
	return newStore(Load, envFiles...)
}

func newStore(loader func() (*Config, error), envFiles ...string) (*Store, error) {
	s := &Store{envFiles: envFiles, loader: loader}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current trả về snapshot hiện tại. Không bao giờ nil sau khi NewStore thành công.
func (s *Store) Current() *Config {
	return s.current.Load()
}

// Reload re-reads .env files and the environment and swaps in the new snapshot.
// On failure the previous snapshot stays active.
func (s *Store) Reload() error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	for _, f := range s.envFiles {
		// Overload: giá trị trong file ghi đè env hiện tại để reload có tác dụng
		if err := godotenv.Overload(f); err != nil {
			log.Debug().Str("file", f).Err(err).Msg("env file skipped")
		}
	}

	cfg, err := s.loader()
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}

	s.current.Store(cfg)
	log.Info().
		Str("environment", cfg.App.Environment).
		Str("store_driver", cfg.App.StoreDriver).
		Msg("Configuration loaded")
	return nil
}
