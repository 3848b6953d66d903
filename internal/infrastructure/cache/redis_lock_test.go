package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLocker_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	locker := NewRedisLocker(client, time.Second, 100*time.Millisecond, nil)

	_, err := locker.Lock(context.Background(), "crm:refresh:t:hubspot")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acquire lock")
}

func TestLayeredLocker_RemoteFailureReleasesLocal(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	local := NewKeyedMutex()
	locker := NewLayeredLocker(local, NewRedisLocker(client, time.Second, 0, nil))

	_, err := locker.Lock(context.Background(), "k")
	require.Error(t, err)
	assert.Equal(t, 0, local.Len())
}
