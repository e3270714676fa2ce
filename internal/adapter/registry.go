package adapter

import (
	"sort"
	"sync"

	"ScoutSync/internal/config"
	"ScoutSync/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// Factory 数据源适配器工厂函数签名
// 入参：数据源配置、赛季年份、日志实例
// 出参：实现ProviderAdapter接口的适配器实例
type Factory func(cfg *config.ProviderConfig, season int, logger *logrus.Logger) interfaces.ProviderAdapter

var (
	factoryMu sync.RWMutex
	factories = make(map[string]Factory)
)

// RegisterFactory 注册数据源工厂函数（各适配器包在init中调用）
func RegisterFactory(name string, f Factory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factories[name] = f
}

// GetFactory 按数据源名取工厂函数
func GetFactory(name string) (Factory, bool) {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

// ListFactories 已注册的数据源名称列表（排序后，方便日志）
func ListFactories() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
