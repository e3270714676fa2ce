package model

// ProviderRoster 各外部数据源拉回的统一结果（抹平 FRC Events / TBA 差异）
type ProviderRoster struct {
	Provider  string          // 数据源名称（frcevents/tba）
	EventKey  string          // 外部平台事件Key（如 2025casd）
	EventName string          // 赛事名称
	StartDate string          // 开始日期（字符串，源格式不统一）
	EndDate   string          // 结束日期
	Teams     []ProviderTeam  // 队伍名单
	Matches   []ProviderMatch // 赛程
}

// ProviderTeam 数据源返回的队伍
type ProviderTeam struct {
	TeamNumber int    `json:"teamNumber"`
	Name       string `json:"name"`
}

// ProviderMatch 数据源返回的单场比赛
type ProviderMatch struct {
	Label       string             `json:"label"`       // 场次号（Qualification 9 / SF1-2）
	Level       MatchLevel         `json:"level"`       // qualification/playoff/practice
	TeamSlots   []ProviderTeamSlot `json:"teamSlots"`   // 按联盟站位排序的参赛队
	MatchNumber int                `json:"matchNumber"` // 数字场次（排序用）
}

// ProviderTeamSlot 参赛队及其联盟站位（Red1/Blue3 等）
type ProviderTeamSlot struct {
	TeamNumber int    `json:"teamNumber"`
	Station    string `json:"station"`
}

// TeamNumbers 取参赛队编号列表（保持站位顺序）
func (m ProviderMatch) TeamNumbers() []int {
	nums := make([]int, 0, len(m.TeamSlots))
	for _, s := range m.TeamSlots {
		nums = append(nums, s.TeamNumber)
	}
	return nums
}

// ========== FRC Events API v3 原生响应结构 ==========

type FRCEventsEnvelope struct {
	Events []FRCEvent `json:"Events"`
}

type FRCEvent struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	DateStart string `json:"dateStart"`
	DateEnd   string `json:"dateEnd"`
}

type FRCTeamsEnvelope struct {
	Teams        []FRCTeam `json:"teams"`
	PageCurrent  int       `json:"pageCurrent"`
	PageTotal    int       `json:"pageTotal"`
	TeamCountAll int       `json:"teamCountTotal"`
}

type FRCTeam struct {
	TeamNumber int    `json:"teamNumber"`
	NameShort  string `json:"nameShort"`
	NameFull   string `json:"nameFull"`
}

type FRCScheduleEnvelope struct {
	Schedule []FRCScheduleMatch `json:"Schedule"`
}

type FRCScheduleMatch struct {
	Description     string         `json:"description"`     // "Qualification 9"
	MatchNumber     int            `json:"matchNumber"`     // 9
	TournamentLevel string         `json:"tournamentLevel"` // "Qualification"/"Playoff"
	Teams           []FRCMatchTeam `json:"teams"`
}

type FRCMatchTeam struct {
	TeamNumber int    `json:"teamNumber"`
	Station    string `json:"station"`
	Surrogate  bool   `json:"surrogate"`
}

// ========== The Blue Alliance API v3 原生响应结构 ==========

type TBAEvent struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type TBATeam struct {
	Key        string `json:"key"`         // "frc620"
	TeamNumber int    `json:"team_number"` // 620
	Nickname   string `json:"nickname"`
}

type TBAMatch struct {
	Key         string       `json:"key"`
	CompLevel   string       `json:"comp_level"` // "qm"/"qf"/"sf"/"f"
	MatchNumber int          `json:"match_number"`
	SetNumber   int          `json:"set_number"`
	Alliances   TBAAlliances `json:"alliances"`
}

type TBAAlliances struct {
	Red  TBAAlliance `json:"red"`
	Blue TBAAlliance `json:"blue"`
}

type TBAAlliance struct {
	TeamKeys []string `json:"team_keys"`
}
