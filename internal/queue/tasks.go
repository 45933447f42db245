package queue

import (
	"encoding/json"

	"github.com/skumatrix/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskVariantGenerate 变体批量生成任务
	TaskVariantGenerate = constants.TaskVariantGenerate
)

// VariantGeneratePayload 变体批量生成任务载荷
type VariantGeneratePayload struct {
	ProductID uint `json:"product_id"`
	SellerID  uint `json:"seller_id"`
	IsAdmin   bool `json:"is_admin"`
}

// NewVariantGenerateTask 创建变体批量生成任务
func NewVariantGenerateTask(payload VariantGeneratePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVariantGenerate, body), nil
}
