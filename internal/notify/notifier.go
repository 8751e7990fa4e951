package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/coachdesk/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const userChannelPrefix = "coachdesk:user:"

const (
	KindMeasurementAdded = "measurement.added"
	KindPlanGenerated    = "nutrition.plan.generated"
	KindSectionAssigned  = "booking.section.assigned"
)

type Notification struct {
	UserID    string    `json:"userId"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Payload   any       `json:"payload,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

func UserChannel(userID string) string {
	return userChannelPrefix + userID
}

// RedisPublisher pushes notifications to the per-user realtime channel.
type RedisPublisher struct {
	redisClient *redis.Client
	now         func() time.Time
}

func NewRedisPublisher(redisClient *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: redisClient,
		now:         time.Now,
	}
}

func (p *RedisPublisher) Notify(ctx context.Context, n Notification) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notify.redis.publish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("kind", n.Kind))

	if n.UserID == "" {
		return fmt.Errorf("notification [%s] without user id", n.Kind)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = p.now().UTC()
	}

	msg, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	receivers, err := p.redisClient.Publish(ctx, UserChannel(n.UserID), string(msg)).Result()
	if err != nil {
		return fmt.Errorf("publish to %s: %w", UserChannel(n.UserID), err)
	}
	log.Tracef("notification %s published to %d receivers", n.Kind, receivers)
	return nil
}

// LogNotifier only writes notifications to the log; used when redis is not configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n Notification) error {
	log.WithFields(log.Fields{
		"user": n.UserID,
		"kind": n.Kind,
	}).Info(n.Message)
	return nil
}

// Fallback tries the primary notifier and logs through the secondary on failure.
type Fallback struct {
	Primary   Notifier
	Secondary Notifier
}

func (f Fallback) Notify(ctx context.Context, n Notification) error {
	if err := f.Primary.Notify(ctx, n); err != nil {
		log.Warnf("notify %s for user %s: %s", n.Kind, n.UserID, err)
		return f.Secondary.Notify(ctx, n)
	}
	return nil
}
