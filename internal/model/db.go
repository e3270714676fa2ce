package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Competition 赛事（一届比赛，如 2025 年某 Regional）。
// event_key 可空：手工建档的赛事没有外部平台Key，存 NULL（NULL 之间不触发唯一索引冲突）
type Competition struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(64);comment:主键UUID" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(256);not null;comment:赛事名称" json:"name"`
	EventKey  *string   `gorm:"column:event_key;type:varchar(32);uniqueIndex;comment:外部平台事件Key（如 2025casd，手工赛事为空）" json:"eventKey,omitempty"`
	StartDate string    `gorm:"column:start_date;type:varchar(16);comment:开始日期" json:"startDate"`
	EndDate   string    `gorm:"column:end_date;type:varchar(16);comment:结束日期" json:"endDate"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间" json:"createdAt"`
}

// Team 参赛队伍。team_number 是业务唯一键，直接作为主键，天然防重复
type Team struct {
	TeamNumber int       `gorm:"column:team_number;primaryKey;autoIncrement:false;comment:队伍编号（业务唯一键）" json:"teamNumber"`
	Name       string    `gorm:"column:name;type:varchar(128);comment:队伍名称" json:"name"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间" json:"createdAt"`
}

// MatchLevel 比赛类型
type MatchLevel string

const (
	LevelQualification MatchLevel = "qualification"
	LevelPlayoff       MatchLevel = "playoff"
	LevelPractice      MatchLevel = "practice"
)

// Match 单场比赛。(competition_id, label) 唯一，重复创建走 upsert 合并
type Match struct {
	ID            string         `gorm:"column:id;primaryKey;type:varchar(64);comment:主键UUID（即 canonical id）" json:"id"`
	CompetitionID string         `gorm:"column:competition_id;type:varchar(64);uniqueIndex:uq_comp_label;not null;comment:所属赛事ID" json:"competitionId"`
	Label         string         `gorm:"column:label;type:varchar(64);uniqueIndex:uq_comp_label;not null;comment:人类可读场次号（Q12/SF1-2/F1-1）" json:"label"`
	Level         MatchLevel     `gorm:"column:level;type:varchar(16);not null;default:qualification;comment:比赛类型" json:"level"`
	TeamNumbers   datatypes.JSON `gorm:"column:team_numbers;type:jsonb;comment:参赛队伍编号列表（可空）" json:"teamNumbers"`
	CreatedAt     time.Time      `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间" json:"createdAt"`
}

// SetTeamNumbers 写入参赛队伍编号列表（jsonb）
func (m *Match) SetTeamNumbers(numbers []int) {
	if len(numbers) == 0 {
		m.TeamNumbers = nil
		return
	}
	raw, err := json.Marshal(numbers)
	if err != nil {
		return
	}
	m.TeamNumbers = datatypes.JSON(raw)
}

// GetTeamNumbers 读取参赛队伍编号列表，空值返回 nil
func (m *Match) GetTeamNumbers() []int {
	if len(m.TeamNumbers) == 0 {
		return nil
	}
	var numbers []int
	if err := json.Unmarshal(m.TeamNumbers, &numbers); err != nil {
		return nil
	}
	return numbers
}

func (Competition) TableName() string { return "competitions" }
func (Team) TableName() string        { return "teams" }
func (Match) TableName() string       { return "matches" }
