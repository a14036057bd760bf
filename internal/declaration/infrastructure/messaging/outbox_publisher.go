// Package messaging 基于 Outbox 模式的领域事件发布
package messaging

import (
	"context"

	"github.com/wyfcoding/pkg/messagequeue/outbox"
	"github.com/wyfcoding/taxreconciliation/internal/declaration/domain"
)

// outboxPublisher 将领域事件写入 outbox 表，由后台 processor 投递到 Kafka
type outboxPublisher struct {
	manager *outbox.Manager
}

// NewOutboxPublisher 创建 OutboxPublisher 实例
func NewOutboxPublisher(manager *outbox.Manager) domain.EventPublisher {
	return &outboxPublisher{manager: manager}
}

// Publish 发布领域事件
func (p *outboxPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	return p.manager.PublishInTx(ctx, p.manager.DB(), topic, key, event)
}
