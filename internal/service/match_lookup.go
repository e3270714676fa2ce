package service

import (
	"context"
	"fmt"
	"sync"

	"ScoutSync/internal/adapter"
	"ScoutSync/internal/config"
	"ScoutSync/internal/model"

	"github.com/sirupsen/logrus"
)

// MatchLookupService 实时查外部数据源的比赛列表（录入页下拉框）。
// 用户快速切换队伍编号时会产生多个在途请求，以请求代数兜底：
// 只有最新代的结果才允许写入缓存，过期结果直接丢弃
type MatchLookupService struct {
	logger *logrus.Logger
	cfg    *config.Config

	mu      sync.Mutex
	gen     uint64
	lastKey string
	cached  []model.ProviderMatch
}

func NewMatchLookupService(logger *logrus.Logger, cfg *config.Config) *MatchLookupService {
	return &MatchLookupService{logger: logger, cfg: cfg}
}

// Lookup 查某赛事某队（teamNumber=0 表示全部）的比赛列表。
// 每次调用分配新的请求代数；慢请求返回时若已被更新的调用取代，
// 其结果不进缓存也不返回错误以外的副作用
func (s *MatchLookupService) Lookup(ctx context.Context, providerName, eventKey string, teamNumber int) ([]model.ProviderMatch, error) {
	key := fmt.Sprintf("%s/%s/%d", providerName, eventKey, teamNumber)

	s.mu.Lock()
	if key == s.lastKey && s.cached != nil {
		cached := s.cached
		s.mu.Unlock()
		return cached, nil
	}
	s.gen++
	myGen := s.gen
	s.mu.Unlock()

	factory, ok := adapter.GetFactory(providerName)
	if !ok {
		return nil, fmt.Errorf("未支持的数据源: %s", providerName)
	}
	providerCfg, ok := s.cfg.Providers[providerName]
	if !ok {
		return nil, fmt.Errorf("未获取到数据源配置: %s", providerName)
	}
	a := factory(&providerCfg, s.cfg.Scouting.Season, s.logger)

	matches, err := a.FetchMatches(ctx, eventKey, teamNumber)
	if err != nil {
		return nil, fmt.Errorf("%s查询比赛列表失败: %w", providerName, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if myGen != s.gen {
		// 已被更新的请求取代，结果照常返回但不污染缓存
		s.logger.WithField("key", key).Debug("比赛列表结果已过期，跳过缓存")
		return matches, nil
	}
	s.lastKey = key
	s.cached = matches
	return matches, nil
}
