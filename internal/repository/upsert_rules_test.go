package repository

import (
	"testing"

	"ScoutSync/internal/model"

	. "github.com/smartystreets/goconvey/convey"
)

func strPtr(s string) *string { return &s }

func TestNormalizeEventKey(t *testing.T) {
	Convey("event_key 归一化", t, func() {
		Convey("手工赛事的空串与空白串归一化为 NULL，连建多个不撞唯一索引", func() {
			c1 := &model.Competition{Name: "手工赛事一", EventKey: strPtr("")}
			c2 := &model.Competition{Name: "手工赛事二", EventKey: strPtr("  ")}
			normalizeEventKey(c1)
			normalizeEventKey(c2)
			So(c1.EventKey, ShouldBeNil)
			So(c2.EventKey, ShouldBeNil)
		})

		Convey("不传 event_key 保持 NULL", func() {
			c := &model.Competition{Name: "手工赛事"}
			normalizeEventKey(c)
			So(c.EventKey, ShouldBeNil)
		})

		Convey("真实 event_key 原样保留", func() {
			c := &model.Competition{Name: "导入赛事", EventKey: strPtr("2025casd")}
			normalizeEventKey(c)
			So(c.EventKey, ShouldNotBeNil)
			So(*c.EventKey, ShouldEqual, "2025casd")
		})
	})
}

func TestMatchUpsertColumns(t *testing.T) {
	Convey("比赛 upsert 的冲突改写列", t, func() {
		Convey("不带队伍列表的重复创建不改写 team_numbers", func() {
			m := &model.Match{CompetitionID: "comp-1", Label: "Q1", Level: model.LevelQualification}
			So(matchUpsertColumns(m), ShouldResemble, []string{"level"})
		})

		Convey("带队伍列表时一并改写", func() {
			m := &model.Match{CompetitionID: "comp-1", Label: "Q1", Level: model.LevelQualification}
			m.SetTeamNumbers([]int{254, 118, 1678})
			So(matchUpsertColumns(m), ShouldResemble, []string{"level", "team_numbers"})
		})
	})
}
