package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisOnce   sync.Once
	redisServer *miniredis.Miniredis
	redisClient *redis.Client
)

// NewRedis starts one miniredis server for the suite and returns a client
// connected to it. The recompute queue lives here when the suite runs with
// the redis backend.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisServer = server
		redisClient = redis.NewClient(&redis.Options{
			Addr: server.Addr(),
		})
	})
	return redisClient
}

// ClearRedis drops every key, queued recompute tasks included.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.Background()).Err()
}

// CloseRedis closes the client and stops the server.
func CloseRedis() {
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if redisServer != nil {
		redisServer.Close()
	}
}
