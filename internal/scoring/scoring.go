// Package scoring 按版本化计分表计算单条观察记录的得分。
// 纯函数，换赛季只换 Table，不动 resolver 和聚合。
package scoring

import "ScoutSync/internal/model"

// PhaseValues 单阶段各类得分元素的分值
type PhaseValues struct {
	CoralL1        int // 一层珊瑚
	CoralL2        int // 二层珊瑚
	CoralL3        int // 三层珊瑚
	CoralL4        int // 四层珊瑚
	AlgaeProcessor int // 藻类处理器
	AlgaeBarge     int // 藻类驳船网
}

// Table 一个赛季的完整计分表
type Table struct {
	Version   string
	Auto      PhaseValues
	Teleop    PhaseValues
	LeaveZone int // 自动阶段离开出发区（一次性）
	Endgame   map[model.EndgameState]int
	MinorFoul int // 每次小犯规扣分（正数）
	MajorFoul int // 每次大犯规扣分（正数）
}

// Reefscape2025 2025 赛季（REEFSCAPE）计分表
var Reefscape2025 = Table{
	Version: "reefscape-2025",
	Auto: PhaseValues{
		CoralL1:        3,
		CoralL2:        4,
		CoralL3:        6,
		CoralL4:        7,
		AlgaeProcessor: 2,
		AlgaeBarge:     6,
	},
	Teleop: PhaseValues{
		CoralL1:        2,
		CoralL2:        3,
		CoralL3:        4,
		CoralL4:        5,
		AlgaeProcessor: 2,
		AlgaeBarge:     6,
	},
	LeaveZone: 3,
	Endgame: map[model.EndgameState]int{
		model.EndgameNone:    0,
		model.EndgamePark:    2,
		model.EndgameShallow: 6,
		model.EndgameDeep:    12,
	},
	MinorFoul: 2,
	MajorFoul: 6,
}

// AutoPoints 自动阶段小计（含离开出发区奖励）
func AutoPoints(r model.ScoutingReport, t Table) int {
	pts := r.AutoCoralL1*t.Auto.CoralL1 +
		r.AutoCoralL2*t.Auto.CoralL2 +
		r.AutoCoralL3*t.Auto.CoralL3 +
		r.AutoCoralL4*t.Auto.CoralL4 +
		r.AutoAlgaeProcessor*t.Auto.AlgaeProcessor +
		r.AutoAlgaeBarge*t.Auto.AlgaeBarge
	if r.AutoLeaveZone {
		pts += t.LeaveZone
	}
	return pts
}

// TeleopPoints 手动阶段小计
func TeleopPoints(r model.ScoutingReport, t Table) int {
	return r.TeleopCoralL1*t.Teleop.CoralL1 +
		r.TeleopCoralL2*t.Teleop.CoralL2 +
		r.TeleopCoralL3*t.Teleop.CoralL3 +
		r.TeleopCoralL4*t.Teleop.CoralL4 +
		r.TeleopAlgaeProcessor*t.Teleop.AlgaeProcessor +
		r.TeleopAlgaeBarge*t.Teleop.AlgaeBarge
}

// EndgamePoints 终局得分。未知状态按 0 处理，不报错
func EndgamePoints(r model.ScoutingReport, t Table) int {
	return t.Endgame[r.Endgame]
}

// Points 单场总分 = 自动 + 手动 + 终局 − 犯规。
// 犯规只算本记录自身的计数，不含对方判罚；分数可为负。
func Points(r model.ScoutingReport, t Table) int {
	return AutoPoints(r, t) + TeleopPoints(r, t) + EndgamePoints(r, t) -
		r.MinorFouls*t.MinorFoul - r.MajorFouls*t.MajorFoul
}
