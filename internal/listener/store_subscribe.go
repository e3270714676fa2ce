package listener

import (
	"context"
	"time"

	"ScoutSync/internal/config"
	"ScoutSync/internal/service"

	"github.com/jackc/pgx/v4"
	"github.com/sirupsen/logrus"
)

// 与 repository 的 pg_notify 通道名一致
const channelName = "scouting_changes"

// retryDelay 连接断开后的重连间隔
const retryDelay = 5 * time.Second

// StoreSubscriber 订阅库内数据变更通知（pg LISTEN/NOTIFY），
// 收到通知后同步重算该赛事的统计缓存。连接断开自动重连
type StoreSubscriber struct {
	cfg    *config.PostgresConfig
	stats  *service.StatsService
	logger *logrus.Logger
}

func NewStoreSubscriber(cfg *config.PostgresConfig, stats *service.StatsService, logger *logrus.Logger) *StoreSubscriber {
	return &StoreSubscriber{cfg: cfg, stats: stats, logger: logger}
}

// Run 持续订阅直到 ctx 取消。订阅出错记录日志后退避重连，不向上抛
func (s *StoreSubscriber) Run(ctx context.Context) error {
	if s.cfg.DSN == "" {
		s.logger.Info("StoreSubscriber: dsn 未配置，跳过订阅")
		<-ctx.Done()
		return nil
	}
	for {
		if err := s.listenOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.WithError(err).Error("StoreSubscriber subscription error")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(retryDelay):
		}
	}
}

func (s *StoreSubscriber) listenOnce(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, s.cfg.DSN)
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+channelName); err != nil {
		return err
	}
	s.logger.Infof("StoreSubscriber: 已订阅 %s 通道", channelName)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		competitionID := notification.Payload
		if competitionID == "" {
			continue
		}
		if err := s.stats.Refresh(ctx, competitionID); err != nil {
			s.logger.WithError(err).WithField("competitionId", competitionID).Warn("统计缓存重算失败")
		}
	}
}
