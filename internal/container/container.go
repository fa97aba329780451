package container

import (
	"errors"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vidtube/config"
	"github.com/oksasatya/vidtube/internal/domain/repository"
	"github.com/oksasatya/vidtube/pkg/helpers"
)

// Infra is everything main connects before the router is built. Rabbit,
// ES and BreakerState are optional and may be nil.
type Infra struct {
	Config       *config.Config
	Logger       *logrus.Logger
	PG           *pgxpool.Pool
	Redis        *redis.Client
	Assets       repository.AssetStore
	JWT          *helpers.JWTManager
	Rabbit       *helpers.RabbitPublisher
	ES           *elasticsearch.Client
	BreakerState func() string
}

var (
	mu    sync.RWMutex
	infra Infra
)

// Provide installs the process-wide infrastructure. It rejects a set that
// is missing anything the API cannot run without.
func Provide(in Infra) error {
	var missing []error
	if in.Config == nil {
		missing = append(missing, errors.New("config"))
	}
	if in.Logger == nil {
		missing = append(missing, errors.New("logger"))
	}
	if in.PG == nil {
		missing = append(missing, errors.New("postgres pool"))
	}
	if in.Assets == nil {
		missing = append(missing, errors.New("asset store"))
	}
	if in.JWT == nil {
		missing = append(missing, errors.New("jwt manager"))
	}
	if len(missing) > 0 {
		return errors.Join(append([]error{errors.New("container: missing")}, missing...)...)
	}
	mu.Lock()
	infra = in
	mu.Unlock()
	return nil
}

func get() Infra {
	mu.RLock()
	defer mu.RUnlock()
	return infra
}

func GetConfig() *config.Config              { return get().Config }
func GetLogger() *logrus.Logger              { return get().Logger }
func GetPGPool() *pgxpool.Pool               { return get().PG }
func GetRedis() *redis.Client                { return get().Redis }
func GetAssetStore() repository.AssetStore   { return get().Assets }
func GetJWT() *helpers.JWTManager            { return get().JWT }
func GetRabbitPub() *helpers.RabbitPublisher { return get().Rabbit }
func GetES() *elasticsearch.Client           { return get().ES }
func GetBreakerState() func() string         { return get().BreakerState }
