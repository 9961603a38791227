package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"storeadmin/src/adapters/admin"
	"storeadmin/src/adapters/gql"
	apihttp "storeadmin/src/adapters/http"
	"storeadmin/src/domain"
	"storeadmin/src/domain/entities"
	"storeadmin/src/helper/env"
	"storeadmin/src/infra/kafka"
	"storeadmin/src/infra/postgres"
	"storeadmin/src/infra/redis"
	"storeadmin/src/repositories"
	"storeadmin/src/services/crud"
	"storeadmin/src/services/events"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// infrastructure reúne os clientes externos; redis e kafka são opcionais.
type infrastructure struct {
	db        *postgres.ReadWriteClient
	redis     *redis.RedisClient
	kafka     *kafka.KafkaClient
	publisher crud.EventPublisher
}

func main() {
	logger := newLogger()
	logger.Info("Starting storeadmin API server...")

	infra, err := newInfrastructure(logger)
	if err != nil {
		log.Fatalf("Failed to initialize infrastructure: %v", err)
	}

	registry := newRegistry(logger, infra)

	graphqlSchema, err := gql.NewSchema(logger, registry)
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}

	srv := apihttp.NewServer(
		logger,
		env.GetInt("SERVER_ADDR", 8888),
		registry,
		gql.NewHandler(logger, graphqlSchema),
		admin.NewHandler(logger, registry),
	)

	// fx só executa o ciclo de vida; a construção acima é explícita.
	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(srv, infra),
		fx.Invoke(registerInfraHooks, registerServerHooks),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), env.GetSeconds("SHUTDOWN_TIMEOUT_SECONDS", 10))
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		logger.Error("Failed to stop application", "error", err)
	}
}

func newLogger() *slog.Logger {
	logLevel := env.GetString("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func newInfrastructure(logger *slog.Logger) (*infrastructure, error) {
	db, err := newSQLClient()
	if err != nil {
		return nil, err
	}

	if env.GetBool("DB_AUTO_MIGRATE", false) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := postgres.Migrate(ctx, db.GetWritePool()); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("Database schema applied")
	}

	infra := &infrastructure{db: db}

	if redisHosts := env.GetString("REDIS_HOSTS"); redisHosts != "" {
		redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 10)
		redisTTL := env.GetSeconds("REDIS_DEFAULT_TTL_SECONDS", 300)
		infra.redis = redis.NewRedisClient(redisHosts, redisPoolSize, redisTTL)
		logger.Info("Redis cache enabled", "hosts", redisHosts)
	} else {
		logger.Info("Redis cache disabled")
	}

	if brokers := env.GetString("KAFKA_BROKERS"); brokers != "" {
		kafkaClient, err := kafka.NewKafkaClient(logger, brokers)
		if err != nil {
			infra.close(logger)
			return nil, err
		}
		infra.kafka = kafkaClient

		topic := env.GetString("KAFKA_ENTITY_EVENTS_TOPIC", "storeadmin.entity-events")
		infra.publisher = events.NewDomainEventPublisher(logger, kafkaClient, topic)
		logger.Info("Entity events enabled", "topic", topic)
	} else {
		logger.Info("Entity events disabled")
	}

	return infra, nil
}

// newSQLClient configura os pools de leitura e escrita (mesmo host por padrão).
func newSQLClient() (*postgres.ReadWriteClient, error) {
	dbHost := env.MustGetString("DB_HOST")
	dbPort := env.GetString("DB_PORT", "5432")
	dbReadHost := env.GetString("DB_READ_HOST", dbHost)
	dbReadPort := env.GetString("DB_READ_PORT", dbPort)
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	return postgres.NewReadWriteClient(dbReadHost, dbHost, dbReadPort, dbPort, dbname, dbUser, dbPassword, maxConnections)
}

func newRegistry(logger *slog.Logger, infra *infrastructure) *crud.Registry {
	return crud.NewRegistry(
		newCollection[entities.Address](logger, entities.AddressSchema, infra),
		newCollection[entities.Customer](logger, entities.CustomerSchema, infra),
		newCollection[entities.Order](logger, entities.OrderSchema, infra),
		newCollection[entities.Product](logger, entities.ProductSchema, infra),
	)
}

func newCollection[T any](logger *slog.Logger, schema domain.EntitySchema, infra *infrastructure) crud.Collection {
	var store crud.Store[T] = repositories.NewEntityRepository[T](schema, infra.db)
	if infra.redis != nil {
		store = repositories.NewCachedEntityRepository[T](logger, schema, store, infra.redis)
	}

	return crud.NewService[T](logger, schema, store, infra.publisher).Collection()
}

func (i *infrastructure) close(logger *slog.Logger) {
	if i.kafka != nil {
		if err := i.kafka.Close(); err != nil {
			logger.Error("Failed to close Kafka producer", "error", err)
		}
	}
	if i.redis != nil {
		if err := i.redis.Close(); err != nil {
			logger.Error("Failed to close Redis client", "error", err)
		}
	}
	if i.db != nil {
		i.db.Close()
	}
}

// registerInfraHooks valida as conexões na subida e fecha tudo na parada.
func registerInfraHooks(lc fx.Lifecycle, infra *infrastructure) {
	logger := slog.Default()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := infra.db.GetWritePool().Ping(ctx); err != nil {
				return fmt.Errorf("postgres ping failed: %w", err)
			}
			if infra.redis != nil {
				if err := infra.redis.HealthCheck(ctx); err != nil {
					// cache indisponível degrada para o banco
					logger.Warn("Redis health check failed", "error", err)
				}
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			infra.close(logger)
			return nil
		},
	})
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, srv *apihttp.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Start server in a separate goroutine
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Create timeout context for graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Error("Server forced to shutdown", "error", err)
				return err
			}
			slog.Info("Server exited gracefully")
			return nil
		},
	})
}
