package redis

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ConnectToRedis func - opens a client and checks the server answers
func ConnectToRedis(host, port, password string, db int) (*redis.Client, error) {
	if host == "" || port == "" {
		return nil, errors.New("cannot establish the redis connection: host and port are required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(host, port),
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		logrus.Error(err)
		return nil, err
	}

	logrus.Infof("Connected to redis at %s db=%d", client.Options().Addr, db)
	return client, nil
}

// DisconnectRedis func
func DisconnectRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		logrus.Error(err)
		return
	}
	logrus.Println("Connection with redis has closed")
}
