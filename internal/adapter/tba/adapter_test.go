package tba

import (
	"testing"

	"ScoutSync/internal/model"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConvertMatch(t *testing.T) {
	Convey("TBA 场次转换", t, func() {
		Convey("资格赛 qm → Q{n}", func() {
			m, ok := convertMatch(model.TBAMatch{
				Key: "2025casd_qm12", CompLevel: "qm", MatchNumber: 12,
			})
			So(ok, ShouldBeTrue)
			So(m.Label, ShouldEqual, "Q12")
			So(m.Level, ShouldEqual, model.LevelQualification)
		})

		Convey("淘汰赛 sf → SF{set}-{n}", func() {
			m, ok := convertMatch(model.TBAMatch{
				Key: "2025casd_sf1m2", CompLevel: "sf", SetNumber: 1, MatchNumber: 2,
			})
			So(ok, ShouldBeTrue)
			So(m.Label, ShouldEqual, "SF1-2")
			So(m.Level, ShouldEqual, model.LevelPlayoff)
		})

		Convey("未知 comp_level 丢弃", func() {
			_, ok := convertMatch(model.TBAMatch{CompLevel: "ef"})
			So(ok, ShouldBeFalse)
		})

		Convey("红蓝联队展开为带工位的队伍槽位", func() {
			m, ok := convertMatch(model.TBAMatch{
				CompLevel: "qm", MatchNumber: 1,
				Alliances: model.TBAAlliances{
					Red:  model.TBAAlliance{TeamKeys: []string{"frc254", "frc1678", "frc971"}},
					Blue: model.TBAAlliance{TeamKeys: []string{"frc118", "frc620", "frc2056"}},
				},
			})
			So(ok, ShouldBeTrue)
			So(m.TeamSlots, ShouldHaveLength, 6)
			So(m.TeamSlots[0].TeamNumber, ShouldEqual, 254)
			So(m.TeamSlots[0].Station, ShouldEqual, "Red1")
			So(m.TeamSlots[3].Station, ShouldEqual, "Blue1")
		})
	})
}

func TestQualificationMatches(t *testing.T) {
	Convey("名册只收资格赛", t, func() {
		all := []model.ProviderMatch{
			{Label: "Q1", Level: model.LevelQualification},
			{Label: "SF1-2", Level: model.LevelPlayoff},
			{Label: "Q2", Level: model.LevelQualification},
			{Label: "F1-1", Level: model.LevelPlayoff},
		}
		quals := qualificationMatches(all)
		So(quals, ShouldHaveLength, 2)
		So(quals[0].Label, ShouldEqual, "Q1")
		So(quals[1].Label, ShouldEqual, "Q2")
	})
}

func TestTeamKeyToNumber(t *testing.T) {
	Convey("TBA 队伍 Key 解析", t, func() {
		So(teamKeyToNumber("frc620"), ShouldEqual, 620)
		So(teamKeyToNumber("frc254"), ShouldEqual, 254)
		So(teamKeyToNumber("garbage"), ShouldEqual, 0)
	})
}

func TestContainsTeam(t *testing.T) {
	Convey("按队伍过滤场次", t, func() {
		m := model.ProviderMatch{TeamSlots: []model.ProviderTeamSlot{
			{TeamNumber: 254}, {TeamNumber: 118},
		}}
		So(containsTeam(m, 254), ShouldBeTrue)
		So(containsTeam(m, 971), ShouldBeFalse)
	})
}
