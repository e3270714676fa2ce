package interfaces

import (
	"context"

	"ScoutSync/internal/model"
)

// ProviderAdapter 所有外部赛事数据源必须实现的核心接口。
// 数据源不可靠（网络错误/404/限流），实现必须返回可区分类型的失败，
// 不允许把失败当空结果吞掉。
type ProviderAdapter interface {
	GetName() string                                                                            // 数据源名称
	FetchRoster(ctx context.Context, eventKey string) (*model.ProviderRoster, error)            // 拉取赛事详情+队伍名单+赛程
	FetchMatches(ctx context.Context, eventKey string, teamNumber int) ([]model.ProviderMatch, error) // 拉取赛程（teamNumber>0 时只要该队参加的场次）
}
