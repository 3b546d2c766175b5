package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"blogapi/internal/config"
	"blogapi/internal/model"
	mysqlClient "blogapi/internal/platform/mysql"
	rabbitmqClient "blogapi/internal/platform/rabbitmq"
	redisClient "blogapi/internal/platform/redis"
	"blogapi/internal/repository"
	"blogapi/internal/worker"
)

type App struct {
	Config         *config.Config
	MySQL          *gorm.DB
	Redis          *redis.Client
	MQConn         *amqp.Connection
	ActivityWorker *worker.ActivityWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN(), cfg.MySQL.MaxOpenConns, cfg.MySQL.MaxIdleConns)
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.User{}, &model.Post{}, &model.Activity{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	activityRepo := repository.NewActivityRepository(mysqlDB)
	activityWorker := worker.NewActivityWorker(mqConn, activityRepo, cfg.RabbitMQ.ActivityQueue)
	if err := activityWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start activity worker failed: %w", err)
	}

	return &App{
		Config:         cfg,
		MySQL:          mysqlDB,
		Redis:          redisCli,
		MQConn:         mqConn,
		ActivityWorker: activityWorker,
		StartedAt:      time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.ActivityWorker != nil {
		a.ActivityWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
