package model

import (
	"time"
)

// MatchRef 原始比赛引用：可能是 canonical match id、人工输入的场次号，
// 也可能是 "<docid>-Qualification 9" 这类拼接串。属于未经校验的输入类型，
// 聚合前必须先过 resolver 归一化，不能直接当 join key 用。
type MatchRef string

func (r MatchRef) String() string { return string(r) }

// EndgameState 终局状态（互斥，四选一）
type EndgameState string

const (
	EndgameNone    EndgameState = "none"
	EndgamePark    EndgameState = "park"
	EndgameShallow EndgameState = "shallow"
	EndgameDeep    EndgameState = "deep"
)

// Valid 是否为合法终局状态
func (e EndgameState) Valid() bool {
	switch e {
	case EndgameNone, EndgamePark, EndgameShallow, EndgameDeep:
		return true
	}
	return false
}

// ScoutingReport 一条观察记录：一名侦察员对一支队伍在一场比赛中的表现
type ScoutingReport struct {
	ID            string   `gorm:"column:id;primaryKey;type:varchar(64);comment:主键UUID" json:"id"`
	CompetitionID string   `gorm:"column:competition_id;type:varchar(64);index;not null;comment:所属赛事ID" json:"competitionId"`
	MatchRef      MatchRef `gorm:"column:match_ref;type:varchar(128);not null;comment:比赛引用（应为 canonical id，可能暂存原始串）" json:"matchRef"`
	TeamNumber    int      `gorm:"column:team_number;index;not null;comment:队伍编号" json:"teamNumber"`
	ScoutName     string   `gorm:"column:scout_name;type:varchar(64);comment:侦察员姓名" json:"scoutName"`

	// 自动阶段计数
	AutoCoralL1        int  `gorm:"column:auto_coral_l1;default:0" json:"autoCoralL1"`
	AutoCoralL2        int  `gorm:"column:auto_coral_l2;default:0" json:"autoCoralL2"`
	AutoCoralL3        int  `gorm:"column:auto_coral_l3;default:0" json:"autoCoralL3"`
	AutoCoralL4        int  `gorm:"column:auto_coral_l4;default:0" json:"autoCoralL4"`
	AutoAlgaeProcessor int  `gorm:"column:auto_algae_processor;default:0" json:"autoAlgaeProcessor"`
	AutoAlgaeBarge     int  `gorm:"column:auto_algae_barge;default:0" json:"autoAlgaeBarge"`
	AutoLeaveZone      bool `gorm:"column:auto_leave_zone;default:false;comment:自动阶段是否离开出发区" json:"autoLeaveZone"`

	// 手动阶段计数
	TeleopCoralL1        int `gorm:"column:teleop_coral_l1;default:0" json:"teleopCoralL1"`
	TeleopCoralL2        int `gorm:"column:teleop_coral_l2;default:0" json:"teleopCoralL2"`
	TeleopCoralL3        int `gorm:"column:teleop_coral_l3;default:0" json:"teleopCoralL3"`
	TeleopCoralL4        int `gorm:"column:teleop_coral_l4;default:0" json:"teleopCoralL4"`
	TeleopAlgaeProcessor int `gorm:"column:teleop_algae_processor;default:0" json:"teleopAlgaeProcessor"`
	TeleopAlgaeBarge     int `gorm:"column:teleop_algae_barge;default:0" json:"teleopAlgaeBarge"`

	Endgame EndgameState `gorm:"column:endgame;type:varchar(16);default:none;comment:终局状态 none/park/shallow/deep" json:"endgame"`

	// 主观评分。defense_rating 仅在 played_defense=true 时有意义，聚合时不得混入无防守场次
	PlayedDefense bool `gorm:"column:played_defense;default:false" json:"playedDefense"`
	DefenseRating *int `gorm:"column:defense_rating;comment:防守评分1-5（可空）" json:"defenseRating,omitempty"`
	DriverSkill   int  `gorm:"column:driver_skill;default:3;comment:车手水平1-5" json:"driverSkill"`
	RobotSpeed    int  `gorm:"column:robot_speed;default:3;comment:机器人速度1-5" json:"robotSpeed"`

	MinorFouls int `gorm:"column:minor_fouls;default:0" json:"minorFouls"`
	MajorFouls int `gorm:"column:major_fouls;default:0" json:"majorFouls"`

	Notes     string    `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间" json:"createdAt"`
}

func (ScoutingReport) TableName() string { return "scouting_reports" }
