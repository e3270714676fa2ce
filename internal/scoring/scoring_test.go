package scoring

import (
	"testing"

	"ScoutSync/internal/model"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPoints(t *testing.T) {
	Convey("2025 赛季计分表", t, func() {
		table := Reefscape2025

		Convey("自动L4一个 + 手动L4一个 + 深笼吊挂 = 24分", func() {
			r := model.ScoutingReport{
				AutoCoralL4:   1,
				TeleopCoralL4: 1,
				Endgame:       model.EndgameDeep,
			}
			So(Points(r, table), ShouldEqual, 24)
			So(AutoPoints(r, table), ShouldEqual, 7)
			So(TeleopPoints(r, table), ShouldEqual, 5)
			So(EndgamePoints(r, table), ShouldEqual, 12)
		})

		Convey("犯规按次扣分：小犯规-2 大犯规-6", func() {
			r := model.ScoutingReport{
				AutoCoralL4:   1,
				TeleopCoralL4: 1,
				Endgame:       model.EndgameDeep,
				MinorFouls:    1,
				MajorFouls:    1,
			}
			So(Points(r, table), ShouldEqual, 16)
		})

		Convey("离开出发区加3分", func() {
			r := model.ScoutingReport{AutoLeaveZone: true, Endgame: model.EndgameNone}
			So(AutoPoints(r, table), ShouldEqual, 3)
			So(Points(r, table), ShouldEqual, 3)
		})

		Convey("藻类：处理器2分 驳船网6分，两阶段同价", func() {
			r := model.ScoutingReport{
				AutoAlgaeProcessor:   1,
				AutoAlgaeBarge:       1,
				TeleopAlgaeProcessor: 1,
				TeleopAlgaeBarge:     1,
				Endgame:              model.EndgameNone,
			}
			So(Points(r, table), ShouldEqual, 16)
		})

		Convey("终局四个状态分值", func() {
			for state, want := range map[model.EndgameState]int{
				model.EndgameNone:    0,
				model.EndgamePark:    2,
				model.EndgameShallow: 6,
				model.EndgameDeep:    12,
			} {
				r := model.ScoutingReport{Endgame: state}
				So(EndgamePoints(r, table), ShouldEqual, want)
			}
		})

		Convey("零记录得0分，纯犯规可得负分", func() {
			So(Points(model.ScoutingReport{Endgame: model.EndgameNone}, table), ShouldEqual, 0)
			r := model.ScoutingReport{Endgame: model.EndgameNone, MajorFouls: 2}
			So(Points(r, table), ShouldEqual, -12)
		})

		Convey("未知终局状态按0分处理", func() {
			r := model.ScoutingReport{Endgame: model.EndgameState("flying")}
			So(EndgamePoints(r, table), ShouldEqual, 0)
		})
	})
}
