package database

import (
	"fmt"
	"strings"
	"sync"
)

// Backend kinds accepted by OpenBackend
const (
	BackendFile  = "file"
	BackendMongo = "mongo"
)

// Repositories bundles every repository registered on one Store
type Repositories struct {
	Store     *Store
	Guilds    *GuildRepository
	Economy   *EconomyRepository
	Levels    *LevelRepository
	Warns     *WarnRepository
	Cooldowns *CooldownRepository
}

var (
	repos     *Repositories
	reposOnce sync.Once
)

// NewRepositories registers every document on store
func NewRepositories(store *Store) *Repositories {
	return &Repositories{
		Store:     store,
		Guilds:    NewGuildRepository(store),
		Economy:   NewEconomyRepository(store),
		Levels:    NewLevelRepository(store),
		Warns:     NewWarnRepository(store),
		Cooldowns: NewCooldownRepository(store),
	}
}

// Init builds the global repositories over backend. Later calls return the
// instance created by the first one.
func Init(backend Backend, opts ...StoreOption) *Repositories {
	reposOnce.Do(func() {
		repos = NewRepositories(NewStore(backend, opts...))
	})
	return repos
}

// Get returns the global repositories, nil before Init
func Get() *Repositories {
	return repos
}

// OpenBackend builds the backend named by kind. A Mongo backend is
// returned even if the first connection fails; it keeps retrying and
// queues writes meanwhile.
func OpenBackend(kind, dataDir, mongoURL, dbName string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", BackendFile:
		return NewFileBackend(dataDir), nil
	case BackendMongo:
		if mongoURL == "" {
			return nil, fmt.Errorf("storage backend %q requires mongodbUrl", kind)
		}
		mb := NewMongoBackend(mongoURL, dbName)
		_ = mb.Connect()
		return mb, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}
