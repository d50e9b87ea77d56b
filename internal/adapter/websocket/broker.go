package websocket

import (
	"fmt"

	"github.com/centrifugal/centrifuge"
)

const brokerPrefix = "sentimeter"

// BrokerConfig locates the Redis instance shared by all server replicas.
type BrokerConfig struct {
	Address  string
	Password string
	DB       int
}

// SetupRedis moves publication fan-out and presence to Redis so that every
// replica delivers a surface's events, whichever replica owns the surface.
// It must be called before node.Run.
func SetupRedis(node *centrifuge.Node, cfg BrokerConfig) error {
	shard, err := centrifuge.NewRedisShard(node, centrifuge.RedisShardConfig{
		Address:  cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return fmt.Errorf("create redis shard: %w", err)
	}
	shards := []*centrifuge.RedisShard{shard}

	broker, err := centrifuge.NewRedisBroker(node, centrifuge.RedisBrokerConfig{Prefix: brokerPrefix, Shards: shards})
	if err != nil {
		return fmt.Errorf("create redis broker: %w", err)
	}
	presence, err := centrifuge.NewRedisPresenceManager(node, centrifuge.RedisPresenceManagerConfig{Prefix: brokerPrefix, Shards: shards})
	if err != nil {
		return fmt.Errorf("create redis presence manager: %w", err)
	}

	node.SetBroker(broker)
	node.SetPresenceManager(presence)
	return nil
}
