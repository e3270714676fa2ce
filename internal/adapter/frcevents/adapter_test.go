package frcevents

import (
	"testing"

	"ScoutSync/internal/model"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConvertMatch(t *testing.T) {
	Convey("FRC Events 场次转换", t, func() {
		Convey("description 直接作场次号，tournamentLevel 映射比赛类型", func() {
			m := convertMatch(model.FRCScheduleMatch{
				Description:     "Qualification 9",
				MatchNumber:     9,
				TournamentLevel: "Qualification",
			})
			So(m.Label, ShouldEqual, "Qualification 9")
			So(m.Level, ShouldEqual, model.LevelQualification)
			So(m.MatchNumber, ShouldEqual, 9)
		})

		Convey("替补队伍不计入槽位", func() {
			m := convertMatch(model.FRCScheduleMatch{
				Description:     "Qualification 1",
				TournamentLevel: "Qualification",
				Teams: []model.FRCMatchTeam{
					{TeamNumber: 254, Station: "Red1"},
					{TeamNumber: 118, Station: "Red2", Surrogate: true},
					{TeamNumber: 1678, Station: "Red3"},
				},
			})
			So(m.TeamSlots, ShouldHaveLength, 2)
			So(m.TeamNumbers(), ShouldResemble, []int{254, 1678})
		})

		Convey("未知 tournamentLevel 归为练习赛", func() {
			m := convertMatch(model.FRCScheduleMatch{
				Description:     "Practice 3",
				TournamentLevel: "Practice",
			})
			So(m.Level, ShouldEqual, model.LevelPractice)
		})
	})
}
