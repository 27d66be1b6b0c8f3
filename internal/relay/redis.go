// internal/relay/redis.go
// Package relay fans ingested batches out to sibling daemon replicas over
// Redis pub/sub, so that a lookup served by replica B can see a batch
// published to replica A. Unlike the teacher's retention store this package
// persists nothing: Redis here is a message bus, not a buffer of record. The
// buffer of record is always each replica's own in-memory pkg/tf2.Buffer.
package relay

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/smilerobotics/tf2-go/internal/logging"
	"github.com/smilerobotics/tf2-go/internal/rpc"
	"github.com/smilerobotics/tf2-go/pkg/tf2"
)

// Relay publishes locally-ingested batches to other replicas and applies
// batches published by them to a local Buffer.
type Relay struct {
	cli     *redis.Client
	channel string
}

// New returns a Relay bound to the given Redis client and channel name.
func New(cli *redis.Client, channel string) *Relay {
	return &Relay{cli: cli, channel: channel}
}

// Publish broadcasts one batch to every other replica subscribed to the
// channel. Errors are logged and swallowed: a missed relay message degrades
// cross-replica consistency but must never block the local ingest path.
func (r *Relay) Publish(ctx context.Context, batch []tf2.StampedTransform, static bool) {
	data, err := rpc.EncodeBatch(batch, static)
	if err != nil {
		logging.Sugar().Warnw("relay encode", "err", err)
		return
	}
	if err := r.cli.Publish(ctx, r.channel, data).Err(); err != nil {
		logging.Sugar().Warnw("relay publish", "err", err)
	}
}

// Run applies batches published by other replicas to dst until ctx is
// cancelled, satisfying tf2.Source so the daemon can register a Relay beside
// its other ingest sources.
func (r *Relay) Run(ctx context.Context, dst *tf2.Buffer) error {
	sub := r.cli.Subscribe(ctx, r.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			batch, static, err := rpc.DecodeBatch([]byte(msg.Payload))
			if err != nil {
				logging.Sugar().Warnw("relay decode", "err", err)
				continue
			}
			dst.HandleIncoming(batch, static)
		}
	}
}
