package repository

import (
	"testing"

	"ScoutSync/internal/model"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSortMatches(t *testing.T) {
	Convey("赛程展示顺序", t, func() {
		Convey("资格赛在前，淘汰赛按 QF<SF<F 分阶段，练习赛垫底", func() {
			list := []*model.Match{
				{Label: "F1-1", Level: model.LevelPlayoff},
				{Label: "P2", Level: model.LevelPractice},
				{Label: "Q2", Level: model.LevelQualification},
				{Label: "SF1-2", Level: model.LevelPlayoff},
				{Label: "Q10", Level: model.LevelQualification},
				{Label: "QF4-1", Level: model.LevelPlayoff},
				{Label: "Q1", Level: model.LevelQualification},
			}
			SortMatches(list)
			labels := make([]string, 0, len(list))
			for _, m := range list {
				labels = append(labels, m.Label)
			}
			So(labels, ShouldResemble, []string{
				"Q1", "Q2", "Q10", "QF4-1", "SF1-2", "F1-1", "P2",
			})
		})

		Convey("场次号按数字序而非字典序（Q2 在 Q10 前）", func() {
			list := []*model.Match{
				{Label: "Q10", Level: model.LevelQualification},
				{Label: "Q2", Level: model.LevelQualification},
			}
			SortMatches(list)
			So(list[0].Label, ShouldEqual, "Q2")
		})

		Convey("同阶段 BO3 比赛按组号与场次排", func() {
			list := []*model.Match{
				{Label: "QF2-1", Level: model.LevelPlayoff},
				{Label: "QF1-2", Level: model.LevelPlayoff},
				{Label: "QF1-1", Level: model.LevelPlayoff},
			}
			SortMatches(list)
			So(list[0].Label, ShouldEqual, "QF1-1")
			So(list[1].Label, ShouldEqual, "QF1-2")
			So(list[2].Label, ShouldEqual, "QF2-1")
		})

		Convey("无数字场次号排在同级末尾", func() {
			list := []*model.Match{
				{Label: "Final Practice", Level: model.LevelQualification},
				{Label: "Q3", Level: model.LevelQualification},
			}
			SortMatches(list)
			So(list[0].Label, ShouldEqual, "Q3")
		})
	})
}
