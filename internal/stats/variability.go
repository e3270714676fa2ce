package stats

import (
	"math"

	"ScoutSync/internal/model"
	"ScoutSync/internal/scoring"
)

// MetricStats 单个指标的样本统计量
type MetricStats struct {
	N      int     `json:"n"`      // 样本数
	Mean   float64 `json:"mean"`   // 样本均值
	StdDev float64 `json:"stdDev"` // 样本标准差（分母 n−1，n≤1 时为 0）
}

// Variability 指标名 → 统计量
type Variability map[string]MetricStats

// 波动性指标集合（固定）
const (
	MetricDriverSkill   = "driverSkill"
	MetricDefenseRating = "defenseRating"
	MetricRobotSpeed    = "robotSpeed"
	MetricPoints        = "points"
	MetricMinorFouls    = "minorFouls"
	MetricMajorFouls    = "majorFouls"
)

// TeamVariability 计算一支队伍各标量指标的样本均值与标准差。
// defenseRating 的样本只取打过防守的行（与聚合的条件均值同一口径）。
func TeamVariability(reports []model.ScoutingReport, teamNumber int, table scoring.Table) Variability {
	var driver, defense, speed, points, minor, major []float64
	for _, r := range reports {
		if r.TeamNumber != teamNumber {
			continue
		}
		driver = append(driver, float64(r.DriverSkill))
		speed = append(speed, float64(r.RobotSpeed))
		points = append(points, float64(scoring.Points(r, table)))
		minor = append(minor, float64(r.MinorFouls))
		major = append(major, float64(r.MajorFouls))
		if r.PlayedDefense && r.DefenseRating != nil {
			defense = append(defense, float64(*r.DefenseRating))
		}
	}
	return Variability{
		MetricDriverSkill:   sampleStats(driver),
		MetricDefenseRating: sampleStats(defense),
		MetricRobotSpeed:    sampleStats(speed),
		MetricPoints:        sampleStats(points),
		MetricMinorFouls:    sampleStats(minor),
		MetricMajorFouls:    sampleStats(major),
	}
}

// sampleStats 均值 + 样本标准差。n≤1 时标准差取 0，永不 NaN
func sampleStats(vals []float64) MetricStats {
	n := len(vals)
	if n == 0 {
		return MetricStats{}
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(n)
	if n == 1 {
		return MetricStats{N: 1, Mean: mean}
	}
	var sq float64
	for _, v := range vals {
		d := v - mean
		sq += d * d
	}
	return MetricStats{N: n, Mean: mean, StdDev: math.Sqrt(sq / float64(n-1))}
}
