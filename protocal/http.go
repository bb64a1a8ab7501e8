package protocal

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"storefront-bot/configs"
	httpAdapter "storefront-bot/internal/adapters/input/http"
	lineAdapter "storefront-bot/internal/adapters/output/line"
	"storefront-bot/internal/adapters/output/memory"
	"storefront-bot/internal/adapters/output/moltin"
	"storefront-bot/internal/adapters/output/postgres"
	redisStore "storefront-bot/internal/adapters/output/redis"
	"storefront-bot/internal/application"
	"storefront-bot/internal/ports/output"
	"storefront-bot/pkg/database_driver/gorm"
	redisDriver "storefront-bot/pkg/database_driver/redis"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

const warmupTimeout = 10 * time.Second

type config struct {
	ENV string `mapstructure:"env"`
}

// ServeHTTP func
func ServeHTTP() error {
	app := fiber.New()
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	if err := configs.GetViper().Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	setupLogger(configs.GetViper().Log)
	logrus.Info(configs.GetViper().Env)

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))

	// Output adapter (conversation state store)
	store, closeStore, err := newStateStore(configs.GetViper())
	if err != nil {
		return err
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			log.Println("Gracefull shut down ...")
			closeStore()
			err := app.Shutdown()
			if err != nil {
				log.Println("Error when shutdown server: ", err)
			}
		}
	}()

	// Output adapter (commerce backend)
	commerce, tokens, err := moltin.NewCommerceClientAdapter(configs.GetViper().Moltin)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), warmupTimeout)
	if err := tokens.Warmup(ctx); err != nil {
		logrus.Warnf("Commerce token warmup failed, first request will retry: %v", err)
	}
	cancel()

	// Output adapter (LINE client)
	lineClient, err := lineAdapter.NewLineClientAdapter(configs.GetViper().Line.ChannelToken)
	if err != nil {
		logrus.Fatalf("Failed to create LINE client: %v", err)
	}

	// Application services
	storefrontSrv := application.NewStorefrontService(commerce, store, lineClient, configs.GetViper().Bot.MaxButtonsInRow)
	lineWebhookSrv := application.NewLineWebhookService(lineClient, storefrontSrv)
	if err := lineWebhookSrv.AnnounceStartup(configs.GetViper().Line.AdminUserID); err != nil {
		logrus.Warnf("Failed to announce startup to admin: %v", err)
	}

	// Input adapters
	hdl := httpAdapter.New(storefrontSrv)
	lineWebhookHdl := httpAdapter.NewLineWebhookHandler(lineWebhookSrv, configs.GetViper().Line.ChannelSecret)

	app.Get("/swagger/*", swagger.HandlerDefault) // default
	app.Get("/health", hdl.HealthCheck)

	admin := app.Group("/v1/api")
	{
		admin.Get("/cart/:user_id", hdl.GetCart)
		admin.Get("/conversation/:user_id", hdl.GetConversation)
		admin.Delete("/conversation/:user_id", hdl.ResetConversation)
	}

	// LINE webhook endpoint
	webhook := app.Group("/webhook")
	{
		webhook.Post("/line", lineWebhookHdl.HandleWebhook)
	}

	logrus.Println("Listerning on port: ", configs.GetViper().App.Port)
	return app.Listen(":" + configs.GetViper().App.Port)
}

// newStateStore picks the conversation store named by store.driver and
// returns a func releasing its connection.
func newStateStore(cfg *configs.Config) (output.StateStore, func(), error) {
	timeout := time.Duration(cfg.Store.Timeout) * time.Minute

	switch cfg.Store.Driver {
	case "redis":
		client, err := redisDriver.ConnectToRedis(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return redisStore.NewStateStore(client, timeout), func() { redisDriver.DisconnectRedis(client) }, nil

	case "postgres":
		dbConGorm, err := gorm.ConnectToPostgreSQL(
			cfg.Postgres.Host,
			cfg.Postgres.Port,
			cfg.Postgres.Username,
			cfg.Postgres.Password,
			cfg.Postgres.DbName,
			cfg.Postgres.SSLMode,
		)
		if err != nil {
			return nil, nil, err
		}
		repo, err := postgres.NewStateRepository(dbConGorm.Postgres, timeout)
		if err != nil {
			gorm.DisconnectPostgres(dbConGorm.Postgres)
			return nil, nil, err
		}
		return repo, func() { gorm.DisconnectPostgres(dbConGorm.Postgres) }, nil

	default:
		logrus.Infof("Using in-memory conversation store, timeout %v", timeout)
		return memory.NewMemoryStateStore(timeout), func() {}, nil
	}
}

func setupLogger(cfg configs.Log) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
