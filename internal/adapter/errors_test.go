package adapter

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestProviderError(t *testing.T) {
	Convey("数据源失败分类", t, func() {
		Convey("状态码映射到失败类别", func() {
			So(NewProviderError("tba", 404, nil).Kind, ShouldEqual, KindNotFound)
			So(NewProviderError("tba", 401, nil).Kind, ShouldEqual, KindUnauthorized)
			So(NewProviderError("tba", 403, nil).Kind, ShouldEqual, KindUnauthorized)
			So(NewProviderError("tba", 429, nil).Kind, ShouldEqual, KindRateLimited)
			So(NewProviderError("tba", 502, nil).Kind, ShouldEqual, KindUnavailable)
		})

		Convey("包装后仍可用 errors.As 取出", func() {
			wrapped := fmt.Errorf("拉取名册失败: %w", NewProviderError("frcevents", 404, nil))
			pe, ok := AsProviderError(wrapped)
			So(ok, ShouldBeTrue)
			So(pe.Provider, ShouldEqual, "frcevents")
			So(IsNotFound(wrapped), ShouldBeTrue)
		})

		Convey("普通错误不是数据源失败", func() {
			_, ok := AsProviderError(errors.New("boom"))
			So(ok, ShouldBeFalse)
			So(IsNotFound(errors.New("boom")), ShouldBeFalse)
		})
	})
}
