package service

import (
	"testing"

	"ScoutSync/internal/model"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCSVRow(t *testing.T) {
	Convey("CSV 行投影", t, func() {
		Convey("列数与表头一致，布尔输出 Yes/No，终局输出字面状态名", func() {
			rating := 4
			r := &model.ScoutingReport{
				CompetitionID: "comp-1",
				MatchRef:      "m-q12",
				TeamNumber:    254,
				ScoutName:     "Alice",
				AutoCoralL4:   2,
				AutoLeaveZone: true,
				TeleopCoralL4: 3,
				Endgame:       model.EndgameDeep,
				PlayedDefense: true,
				DefenseRating: &rating,
				DriverSkill:   5,
				RobotSpeed:    4,
				MinorFouls:    1,
				Notes:         "很稳, 值得联队",
			}
			row := csvRow(r)
			So(row, ShouldHaveLength, len(csvHeader))
			So(row[0], ShouldEqual, "comp-1")
			So(row[2], ShouldEqual, "254")
			So(row[10], ShouldEqual, "Yes") // Auto Leave Zone
			So(row[17], ShouldEqual, "deep")
			So(row[18], ShouldEqual, "Yes")
			So(row[19], ShouldEqual, "4")
			So(row[len(row)-1], ShouldEqual, "很稳, 值得联队")
		})

		Convey("没打防守时防守评分留空", func() {
			rating := 3
			r := &model.ScoutingReport{
				Endgame:       model.EndgameNone,
				PlayedDefense: false,
				DefenseRating: &rating,
				DriverSkill:   3,
				RobotSpeed:    3,
			}
			row := csvRow(r)
			So(row[18], ShouldEqual, "No")
			So(row[19], ShouldEqual, "")
		})
	})
}
