package stats

import "sort"

// sortKeys 可排序统计项 → 取值函数。key 与 TeamSummary 的 json 字段名一致
var sortKeys = map[string]func(TeamSummary) float64{
	"teamNumber":        func(s TeamSummary) float64 { return float64(s.TeamNumber) },
	"matchCount":        func(s TeamSummary) float64 { return float64(s.MatchCount) },
	"avgPoints":         func(s TeamSummary) float64 { return s.AvgPoints },
	"avgAutoPoints":     func(s TeamSummary) float64 { return s.AvgAutoPoints },
	"avgTeleopPoints":   func(s TeamSummary) float64 { return s.AvgTeleopPoints },
	"avgAutoCoralL1":    func(s TeamSummary) float64 { return s.AvgAutoCoralL1 },
	"avgAutoCoralL2":    func(s TeamSummary) float64 { return s.AvgAutoCoralL2 },
	"avgAutoCoralL3":    func(s TeamSummary) float64 { return s.AvgAutoCoralL3 },
	"avgAutoCoralL4":    func(s TeamSummary) float64 { return s.AvgAutoCoralL4 },
	"avgTeleopCoralL1":  func(s TeamSummary) float64 { return s.AvgTeleopCoralL1 },
	"avgTeleopCoralL2":  func(s TeamSummary) float64 { return s.AvgTeleopCoralL2 },
	"avgTeleopCoralL3":  func(s TeamSummary) float64 { return s.AvgTeleopCoralL3 },
	"avgTeleopCoralL4":  func(s TeamSummary) float64 { return s.AvgTeleopCoralL4 },
	"avgAlgaeProcessor": func(s TeamSummary) float64 { return s.AvgAlgaeProcessor },
	"avgAlgaeBarge":     func(s TeamSummary) float64 { return s.AvgAlgaeBarge },
	"avgMinorFouls":     func(s TeamSummary) float64 { return s.AvgMinorFouls },
	"avgMajorFouls":     func(s TeamSummary) float64 { return s.AvgMajorFouls },
	"deepClimbRate":     func(s TeamSummary) float64 { return s.DeepClimbRate },
	"shallowClimbRate":  func(s TeamSummary) float64 { return s.ShallowClimbRate },
	"parkRate":          func(s TeamSummary) float64 { return s.ParkRate },
	"leaveZoneRate":     func(s TeamSummary) float64 { return s.LeaveZoneRate },
	"avgDriverSkill":    func(s TeamSummary) float64 { return s.AvgDriverSkill },
	"avgRobotSpeed":     func(s TeamSummary) float64 { return s.AvgRobotSpeed },
	"avgDefenseRating":  func(s TeamSummary) float64 { return s.AvgDefenseRating },
	"totalCoralL4":      func(s TeamSummary) float64 { return float64(s.TotalCoralL4) },
	"totalCoral":        func(s TeamSummary) float64 { return float64(s.TotalCoral) },
}

// SortBy 按指定统计项稳定排序，返回新切片不改入参。
// key 无效时退回默认排序（avgPoints 降序）。排序状态（当前键/方向）是
// 调用方的瞬时 UI 状态，引擎只提供纯排序。
func SortBy(summaries []TeamSummary, key string, desc bool) []TeamSummary {
	out := make([]TeamSummary, len(summaries))
	copy(out, summaries)
	if _, ok := sortKeys[key]; !ok {
		key, desc = "avgPoints", true
	}
	stableSortBy(out, key, desc)
	return out
}

// SortKeyValid key 是否为可排序统计项
func SortKeyValid(key string) bool {
	_, ok := sortKeys[key]
	return ok
}

func stableSortBy(list []TeamSummary, key string, desc bool) {
	get := sortKeys[key]
	sort.SliceStable(list, func(i, j int) bool {
		a, b := get(list[i]), get(list[j])
		if desc {
			return a > b
		}
		return a < b
	})
}
