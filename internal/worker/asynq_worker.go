package worker

import (
	"context"
	"encoding/json"

	"github.com/skumatrix/internal/logger"
	"github.com/skumatrix/internal/provider"
	"github.com/skumatrix/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskVariantGenerate, c.handleVariantGenerate)
}

// handleVariantGenerate 消费变体批量生成任务。
// 组合级失败已由服务层记入结果并跳过，这里只对任务级失败返回错误触发重试。
func (c *Consumer) handleVariantGenerate(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_variant_generate_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.VariantGeneratePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_variant_generate_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_variant_generate_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}

	result, err := c.VariantService.GenerateFromAttributes(payload.ProductID, payload.SellerID, payload.IsAdmin)
	if err != nil {
		logger.Warnw("worker_variant_generate_failed",
			"product_id", payload.ProductID,
			"seller_id", payload.SellerID,
			"error", err,
		)
		return err
	}
	logger.Infow("worker_variant_generate_done",
		"product_id", payload.ProductID,
		"created", len(result.Created),
		"failed", len(result.Failed),
	)
	return nil
}
