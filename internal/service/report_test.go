package service

import (
	"testing"

	"ScoutSync/internal/config"
	"ScoutSync/internal/model"

	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
)

func newTestReportService() *ReportService {
	return &ReportService{
		logger: logrus.New(),
		cfg: &config.Config{
			Scouting: config.ScoutingConfig{Season: 2025, CounterMax: 99},
		},
	}
}

func TestSanitize(t *testing.T) {
	Convey("录入前的计数夹取", t, func() {
		s := newTestReportService()

		Convey("负数归零，超上限夹到上限", func() {
			r := &model.ScoutingReport{
				AutoCoralL1:   -3,
				TeleopCoralL4: 500,
				MinorFouls:    -1,
				DriverSkill:   3,
				RobotSpeed:    3,
				Endgame:       model.EndgameNone,
			}
			s.sanitize(r)
			So(r.AutoCoralL1, ShouldEqual, 0)
			So(r.TeleopCoralL4, ShouldEqual, 99)
			So(r.MinorFouls, ShouldEqual, 0)
		})

		Convey("不打防守时清空防守评分", func() {
			rating := 4
			r := &model.ScoutingReport{
				PlayedDefense: false,
				DefenseRating: &rating,
				DriverSkill:   3,
				RobotSpeed:    3,
			}
			s.sanitize(r)
			So(r.DefenseRating, ShouldBeNil)
		})

		Convey("终局状态缺省补 none", func() {
			r := &model.ScoutingReport{DriverSkill: 3, RobotSpeed: 3}
			s.sanitize(r)
			So(r.Endgame, ShouldEqual, model.EndgameNone)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("录入校验", t, func() {
		s := newTestReportService()

		Convey("评分超出1-5拒绝", func() {
			r := &model.ScoutingReport{DriverSkill: 6, RobotSpeed: 3, Endgame: model.EndgameNone}
			So(s.validate(r), ShouldNotBeNil)

			rating := 0
			r2 := &model.ScoutingReport{
				DriverSkill: 3, RobotSpeed: 3, Endgame: model.EndgameNone,
				PlayedDefense: true, DefenseRating: &rating,
			}
			So(s.validate(r2), ShouldNotBeNil)
		})

		Convey("非法终局状态拒绝", func() {
			r := &model.ScoutingReport{DriverSkill: 3, RobotSpeed: 3, Endgame: "hover"}
			So(s.validate(r), ShouldNotBeNil)
		})

		Convey("合法记录通过", func() {
			rating := 5
			r := &model.ScoutingReport{
				DriverSkill: 1, RobotSpeed: 5, Endgame: model.EndgameDeep,
				PlayedDefense: true, DefenseRating: &rating,
			}
			So(s.validate(r), ShouldBeNil)
		})
	})
}

func TestDedupMatches(t *testing.T) {
	Convey("导入赛程去重", t, func() {
		Convey("同场次保留最后一条", func() {
			in := []model.ProviderMatch{
				{Label: "Q1", Level: model.LevelQualification, MatchNumber: 1},
				{Label: "Q2", Level: model.LevelQualification, MatchNumber: 2},
				{Label: "Q1", Level: model.LevelQualification, MatchNumber: 99},
			}
			out := dedupMatches(in)
			So(out, ShouldHaveLength, 2)
			So(out[0].Label, ShouldEqual, "Q1")
			So(out[0].MatchNumber, ShouldEqual, 99)
			So(out[1].Label, ShouldEqual, "Q2")
		})

		Convey("空输入直接返回", func() {
			So(dedupMatches(nil), ShouldBeEmpty)
		})
	})
}
