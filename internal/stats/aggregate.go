// Package stats 把观察记录按队伍折叠成汇总统计（均值/比率/总计），
// 并提供排序与波动性（样本标准差）计算。全部为纯函数，订阅回调里全量重算。
package stats

import (
	"ScoutSync/internal/model"
	"ScoutSync/internal/scoring"
)

// TeamSummary 单支队伍的汇总统计（每个 Avg* 字段按场次数取均值）
type TeamSummary struct {
	TeamNumber int `json:"teamNumber"`
	MatchCount int `json:"matchCount"`

	AvgPoints       float64 `json:"avgPoints"`
	AvgAutoPoints   float64 `json:"avgAutoPoints"`
	AvgTeleopPoints float64 `json:"avgTeleopPoints"`

	AvgAutoCoralL1   float64 `json:"avgAutoCoralL1"`
	AvgAutoCoralL2   float64 `json:"avgAutoCoralL2"`
	AvgAutoCoralL3   float64 `json:"avgAutoCoralL3"`
	AvgAutoCoralL4   float64 `json:"avgAutoCoralL4"`
	AvgTeleopCoralL1 float64 `json:"avgTeleopCoralL1"`
	AvgTeleopCoralL2 float64 `json:"avgTeleopCoralL2"`
	AvgTeleopCoralL3 float64 `json:"avgTeleopCoralL3"`
	AvgTeleopCoralL4 float64 `json:"avgTeleopCoralL4"`

	// 藻类均值合并自动+手动两阶段
	AvgAlgaeProcessor float64 `json:"avgAlgaeProcessor"`
	AvgAlgaeBarge     float64 `json:"avgAlgaeBarge"`

	AvgMinorFouls float64 `json:"avgMinorFouls"`
	AvgMajorFouls float64 `json:"avgMajorFouls"`

	// 终局各状态占比（百分数）
	DeepClimbRate    float64 `json:"deepClimbRate"`
	ShallowClimbRate float64 `json:"shallowClimbRate"`
	ParkRate         float64 `json:"parkRate"`
	LeaveZoneRate    float64 `json:"leaveZoneRate"`

	AvgDriverSkill float64 `json:"avgDriverSkill"`
	AvgRobotSpeed  float64 `json:"avgRobotSpeed"`

	// 防守均值为条件均值：分母是打过防守的场次数，不是总场次数
	AvgDefenseRating  float64 `json:"avgDefenseRating"`
	DefenseMatchCount int     `json:"defenseMatchCount"`

	TotalCoralL4 int `json:"totalCoralL4"` // 自动+手动四层总数
	TotalCoral   int `json:"totalCoral"`   // 全部珊瑚总数（两阶段四层全算）
}

// accumulator 折叠期间的运行累计
type accumulator struct {
	summary TeamSummary

	sumPoints, sumAutoPoints, sumTeleopPoints int
	sumAutoCoral                              [4]int
	sumTeleopCoral                            [4]int
	sumAlgaeProcessor, sumAlgaeBarge          int
	sumMinorFouls, sumMajorFouls              int
	endgameCounts                             map[model.EndgameState]int
	leaveZoneCount                            int
	sumDriverSkill, sumRobotSpeed             int
	sumDefense, defenseCount                  int
}

// Aggregate 把（调用方已按赛事/队伍筛好的）观察记录折叠为每队一条汇总。
// 空输入返回空切片；默认排序为平均得分降序，平分按首次出现顺序（稳定）。
func Aggregate(reports []model.ScoutingReport, table scoring.Table) []TeamSummary {
	if len(reports) == 0 {
		return []TeamSummary{}
	}

	accByTeam := make(map[int]*accumulator)
	var order []int // 记录队伍首次出现顺序，保证平局稳定

	for _, r := range reports {
		acc, ok := accByTeam[r.TeamNumber]
		if !ok {
			acc = &accumulator{
				summary:       TeamSummary{TeamNumber: r.TeamNumber},
				endgameCounts: make(map[model.EndgameState]int),
			}
			accByTeam[r.TeamNumber] = acc
			order = append(order, r.TeamNumber)
		}
		acc.fold(r, table)
	}

	out := make([]TeamSummary, 0, len(order))
	for _, tn := range order {
		out = append(out, accByTeam[tn].finalize())
	}
	stableSortBy(out, "avgPoints", true)
	return out
}

func (a *accumulator) fold(r model.ScoutingReport, table scoring.Table) {
	a.summary.MatchCount++

	a.sumPoints += scoring.Points(r, table)
	a.sumAutoPoints += scoring.AutoPoints(r, table)
	a.sumTeleopPoints += scoring.TeleopPoints(r, table)

	a.sumAutoCoral[0] += r.AutoCoralL1
	a.sumAutoCoral[1] += r.AutoCoralL2
	a.sumAutoCoral[2] += r.AutoCoralL3
	a.sumAutoCoral[3] += r.AutoCoralL4
	a.sumTeleopCoral[0] += r.TeleopCoralL1
	a.sumTeleopCoral[1] += r.TeleopCoralL2
	a.sumTeleopCoral[2] += r.TeleopCoralL3
	a.sumTeleopCoral[3] += r.TeleopCoralL4

	a.sumAlgaeProcessor += r.AutoAlgaeProcessor + r.TeleopAlgaeProcessor
	a.sumAlgaeBarge += r.AutoAlgaeBarge + r.TeleopAlgaeBarge

	a.sumMinorFouls += r.MinorFouls
	a.sumMajorFouls += r.MajorFouls

	a.endgameCounts[r.Endgame]++
	if r.AutoLeaveZone {
		a.leaveZoneCount++
	}

	a.sumDriverSkill += r.DriverSkill
	a.sumRobotSpeed += r.RobotSpeed

	// 防守评分只在确实打了防守且有评分时计入，维护独立分子分母
	if r.PlayedDefense && r.DefenseRating != nil {
		a.sumDefense += *r.DefenseRating
		a.defenseCount++
	}

	a.summary.TotalCoralL4 += r.AutoCoralL4 + r.TeleopCoralL4
	a.summary.TotalCoral += r.AutoCoralL1 + r.AutoCoralL2 + r.AutoCoralL3 + r.AutoCoralL4 +
		r.TeleopCoralL1 + r.TeleopCoralL2 + r.TeleopCoralL3 + r.TeleopCoralL4
}

func (a *accumulator) finalize() TeamSummary {
	s := a.summary
	n := float64(s.MatchCount)

	s.AvgPoints = float64(a.sumPoints) / n
	s.AvgAutoPoints = float64(a.sumAutoPoints) / n
	s.AvgTeleopPoints = float64(a.sumTeleopPoints) / n

	s.AvgAutoCoralL1 = float64(a.sumAutoCoral[0]) / n
	s.AvgAutoCoralL2 = float64(a.sumAutoCoral[1]) / n
	s.AvgAutoCoralL3 = float64(a.sumAutoCoral[2]) / n
	s.AvgAutoCoralL4 = float64(a.sumAutoCoral[3]) / n
	s.AvgTeleopCoralL1 = float64(a.sumTeleopCoral[0]) / n
	s.AvgTeleopCoralL2 = float64(a.sumTeleopCoral[1]) / n
	s.AvgTeleopCoralL3 = float64(a.sumTeleopCoral[2]) / n
	s.AvgTeleopCoralL4 = float64(a.sumTeleopCoral[3]) / n

	s.AvgAlgaeProcessor = float64(a.sumAlgaeProcessor) / n
	s.AvgAlgaeBarge = float64(a.sumAlgaeBarge) / n

	s.AvgMinorFouls = float64(a.sumMinorFouls) / n
	s.AvgMajorFouls = float64(a.sumMajorFouls) / n

	s.DeepClimbRate = float64(a.endgameCounts[model.EndgameDeep]) / n * 100
	s.ShallowClimbRate = float64(a.endgameCounts[model.EndgameShallow]) / n * 100
	s.ParkRate = float64(a.endgameCounts[model.EndgamePark]) / n * 100
	s.LeaveZoneRate = float64(a.leaveZoneCount) / n * 100

	s.AvgDriverSkill = float64(a.sumDriverSkill) / n
	s.AvgRobotSpeed = float64(a.sumRobotSpeed) / n

	// 没打过防守的队伍报 0，不允许出现 NaN
	s.DefenseMatchCount = a.defenseCount
	if a.defenseCount > 0 {
		s.AvgDefenseRating = float64(a.sumDefense) / float64(a.defenseCount)
	}
	return s
}
