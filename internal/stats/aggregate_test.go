package stats

import (
	"testing"

	"ScoutSync/internal/model"
	"ScoutSync/internal/scoring"

	. "github.com/smartystreets/goconvey/convey"
)

func intPtr(v int) *int { return &v }

func TestAggregate(t *testing.T) {
	Convey("队伍汇总统计", t, func() {
		table := scoring.Reefscape2025

		Convey("空输入返回空切片而非 nil", func() {
			got := Aggregate([]model.ScoutingReport{}, table)
			So(got, ShouldNotBeNil)
			So(got, ShouldBeEmpty)
		})

		Convey("防守均值是条件均值：分母只数打过防守的场次", func() {
			reports := []model.ScoutingReport{
				{TeamNumber: 254, DriverSkill: 3, RobotSpeed: 3, Endgame: model.EndgameNone,
					PlayedDefense: true, DefenseRating: intPtr(3)},
				{TeamNumber: 254, DriverSkill: 3, RobotSpeed: 3, Endgame: model.EndgameNone,
					PlayedDefense: true, DefenseRating: intPtr(5)},
				{TeamNumber: 254, DriverSkill: 3, RobotSpeed: 3, Endgame: model.EndgameNone,
					PlayedDefense: false},
			}
			got := Aggregate(reports, table)
			So(got, ShouldHaveLength, 1)
			So(got[0].MatchCount, ShouldEqual, 3)
			So(got[0].DefenseMatchCount, ShouldEqual, 2)
			So(got[0].AvgDefenseRating, ShouldEqual, 4.0)
		})

		Convey("没打过防守的队伍防守均值报0，不出现NaN", func() {
			reports := []model.ScoutingReport{
				{TeamNumber: 118, DriverSkill: 4, RobotSpeed: 4, Endgame: model.EndgamePark},
			}
			got := Aggregate(reports, table)
			So(got[0].AvgDefenseRating, ShouldEqual, 0)
			So(got[0].DefenseMatchCount, ShouldEqual, 0)
		})

		Convey("均值与比率按场次数折算", func() {
			reports := []model.ScoutingReport{
				{TeamNumber: 1678, AutoCoralL4: 2, TeleopCoralL4: 4, AutoLeaveZone: true,
					DriverSkill: 5, RobotSpeed: 4, Endgame: model.EndgameDeep},
				{TeamNumber: 1678, AutoCoralL4: 0, TeleopCoralL4: 2, AutoLeaveZone: false,
					DriverSkill: 3, RobotSpeed: 4, Endgame: model.EndgameShallow},
			}
			got := Aggregate(reports, table)
			So(got, ShouldHaveLength, 1)
			s := got[0]
			So(s.AvgAutoCoralL4, ShouldEqual, 1.0)
			So(s.AvgTeleopCoralL4, ShouldEqual, 3.0)
			So(s.TotalCoralL4, ShouldEqual, 8)
			So(s.TotalCoral, ShouldEqual, 8)
			So(s.DeepClimbRate, ShouldEqual, 50.0)
			So(s.ShallowClimbRate, ShouldEqual, 50.0)
			So(s.LeaveZoneRate, ShouldEqual, 50.0)
			So(s.AvgDriverSkill, ShouldEqual, 4.0)
		})

		Convey("输入顺序不影响统计结果", func() {
			a := model.ScoutingReport{TeamNumber: 254, AutoCoralL4: 1, DriverSkill: 3, RobotSpeed: 3, Endgame: model.EndgameDeep}
			b := model.ScoutingReport{TeamNumber: 254, TeleopCoralL2: 3, DriverSkill: 4, RobotSpeed: 2, Endgame: model.EndgameNone}
			c := model.ScoutingReport{TeamNumber: 118, AutoCoralL1: 2, DriverSkill: 2, RobotSpeed: 5, Endgame: model.EndgamePark}

			first := Aggregate([]model.ScoutingReport{a, b, c}, table)
			second := Aggregate([]model.ScoutingReport{c, b, a}, table)
			byTeam := func(list []TeamSummary, tn int) TeamSummary {
				for _, s := range list {
					if s.TeamNumber == tn {
						return s
					}
				}
				return TeamSummary{}
			}
			So(byTeam(first, 254), ShouldResemble, byTeam(second, 254))
			So(byTeam(first, 118), ShouldResemble, byTeam(second, 118))
		})

		Convey("默认按平均得分降序", func() {
			reports := []model.ScoutingReport{
				{TeamNumber: 1, DriverSkill: 3, RobotSpeed: 3, Endgame: model.EndgameNone},
				{TeamNumber: 2, AutoCoralL4: 3, DriverSkill: 3, RobotSpeed: 3, Endgame: model.EndgameDeep},
			}
			got := Aggregate(reports, table)
			So(got[0].TeamNumber, ShouldEqual, 2)
			So(got[1].TeamNumber, ShouldEqual, 1)
		})
	})
}

func TestSortBy(t *testing.T) {
	Convey("汇总排序", t, func() {
		summaries := []TeamSummary{
			{TeamNumber: 1, AvgPoints: 10, AvgDriverSkill: 2, TotalCoralL4: 5},
			{TeamNumber: 2, AvgPoints: 30, AvgDriverSkill: 4, TotalCoralL4: 1},
			{TeamNumber: 3, AvgPoints: 20, AvgDriverSkill: 3, TotalCoralL4: 9},
		}

		Convey("按任意数值列升降序", func() {
			asc := SortBy(summaries, "avgDriverSkill", false)
			So(asc[0].TeamNumber, ShouldEqual, 1)
			So(asc[2].TeamNumber, ShouldEqual, 2)

			desc := SortBy(summaries, "totalCoralL4", true)
			So(desc[0].TeamNumber, ShouldEqual, 3)
		})

		Convey("非法排序列回退平均得分降序", func() {
			got := SortBy(summaries, "没有这一列", true)
			So(got[0].TeamNumber, ShouldEqual, 2)
			So(got[1].TeamNumber, ShouldEqual, 3)
			So(got[2].TeamNumber, ShouldEqual, 1)
		})

		Convey("排序不改动原切片", func() {
			_ = SortBy(summaries, "avgPoints", false)
			So(summaries[0].TeamNumber, ShouldEqual, 1)
		})
	})
}

func TestTeamVariability(t *testing.T) {
	Convey("单队指标波动性", t, func() {
		table := scoring.Reefscape2025

		Convey("样本标准差用 n-1 分母", func() {
			reports := []model.ScoutingReport{
				{TeamNumber: 254, DriverSkill: 2, RobotSpeed: 3, Endgame: model.EndgameNone},
				{TeamNumber: 254, DriverSkill: 4, RobotSpeed: 3, Endgame: model.EndgameNone},
			}
			v := TeamVariability(reports, 254, table)
			So(v[MetricDriverSkill].N, ShouldEqual, 2)
			So(v[MetricDriverSkill].Mean, ShouldEqual, 3.0)
			// 样本方差 ((2-3)^2+(4-3)^2)/1 = 2
			So(v[MetricDriverSkill].StdDev, ShouldAlmostEqual, 1.4142, 0.001)
		})

		Convey("单样本标准差为0", func() {
			reports := []model.ScoutingReport{
				{TeamNumber: 118, DriverSkill: 5, RobotSpeed: 1, Endgame: model.EndgameNone},
			}
			v := TeamVariability(reports, 118, table)
			So(v[MetricDriverSkill].StdDev, ShouldEqual, 0)
			So(v[MetricRobotSpeed].StdDev, ShouldEqual, 0)
		})

		Convey("防守样本只取打过防守的场次", func() {
			reports := []model.ScoutingReport{
				{TeamNumber: 971, DriverSkill: 3, RobotSpeed: 3, Endgame: model.EndgameNone,
					PlayedDefense: true, DefenseRating: intPtr(4)},
				{TeamNumber: 971, DriverSkill: 3, RobotSpeed: 3, Endgame: model.EndgameNone},
			}
			v := TeamVariability(reports, 971, table)
			So(v[MetricDefenseRating].N, ShouldEqual, 1)
			So(v[MetricDefenseRating].Mean, ShouldEqual, 4.0)
		})

		Convey("其他队伍的记录不计入", func() {
			reports := []model.ScoutingReport{
				{TeamNumber: 254, DriverSkill: 5, RobotSpeed: 5, Endgame: model.EndgameNone},
				{TeamNumber: 118, DriverSkill: 1, RobotSpeed: 1, Endgame: model.EndgameNone},
			}
			v := TeamVariability(reports, 254, table)
			So(v[MetricDriverSkill].N, ShouldEqual, 1)
			So(v[MetricDriverSkill].Mean, ShouldEqual, 5.0)
		})
	})
}
