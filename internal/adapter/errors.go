package adapter

import (
	"errors"
	"fmt"
)

// FailureKind 数据源失败类别。调用方按类别决定重试还是放弃
type FailureKind string

const (
	KindNotFound     FailureKind = "not_found"    // 404：事件Key不存在
	KindUnauthorized FailureKind = "unauthorized" // 401/403：凭证缺失或无效
	KindRateLimited  FailureKind = "rate_limited" // 429：被限流
	KindUnavailable  FailureKind = "unavailable"  // 5xx/网络错误：服务不可用
)

// ProviderError 外部数据源的类型化失败
type ProviderError struct {
	Provider   string      // 数据源名称
	Kind       FailureKind // 失败类别
	StatusCode int         // HTTP状态码（网络错误时为 0）
	Err        error       // 底层错误（可空）
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s数据源%s (status=%d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s数据源%s (status=%d)", e.Provider, e.Kind, e.StatusCode)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError 按HTTP状态码归类失败
func NewProviderError(provider string, statusCode int, err error) *ProviderError {
	kind := KindUnavailable
	switch {
	case statusCode == 404:
		kind = KindNotFound
	case statusCode == 401 || statusCode == 403:
		kind = KindUnauthorized
	case statusCode == 429:
		kind = KindRateLimited
	}
	return &ProviderError{Provider: provider, Kind: kind, StatusCode: statusCode, Err: err}
}

// AsProviderError 尝试把任意错误解包为 ProviderError
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsNotFound 是否为"事件不存在"类失败
func IsNotFound(err error) bool {
	pe, ok := AsProviderError(err)
	return ok && pe.Kind == KindNotFound
}
