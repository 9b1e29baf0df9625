package suite

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Containers left behind by a crashed test are killed after this many
	// seconds.
	containerLifetime = 120
	startupTimeout    = 2 * time.Minute
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// Suite carries the shared fixtures of the cache tests.
type Suite struct {
	*testing.T
	Logger *logrus.Logger

	Storage *redis.Client
}

// Logger returns a logger that discards its output.
func Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// New starts a throwaway Redis container. The test is skipped when no Docker
// daemon is reachable.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	t.Cleanup(cancel)

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not connect to docker: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not available: %v", err)
	}
	pool.MaxWait = startupTimeout

	resource := startRedis(t, pool)
	client, err := connectRedis(ctx, pool, resource.GetHostPort(redisPort))
	if err != nil {
		_ = pool.Purge(resource)
		t.Fatalf("could not connect to redis: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis container: %v", err)
		}
	})

	return ctx, &Suite{
		T:       t,
		Logger:  Logger(),
		Storage: client,
	}
}

func startRedis(t *testing.T, pool *dockertest.Pool) *dockertest.Resource {
	t.Helper()

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis container: %v", err)
	}

	_ = resource.Expire(containerLifetime)
	return resource
}

// connectRedis waits for the container to accept connections and hands back
// an empty database.
func connectRedis(ctx context.Context, pool *dockertest.Pool, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := pool.Retry(func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		_ = client.Close()
		return nil, err
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
