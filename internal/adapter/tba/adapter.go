package tba

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"ScoutSync/internal/adapter"
	"ScoutSync/internal/config"
	"ScoutSync/internal/interfaces"
	"ScoutSync/internal/model"
	"ScoutSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

const providerName = "tba"

func init() {
	adapter.RegisterFactory(providerName, NewTBAAdapter)
}

// Adapter The Blue Alliance API v3 适配器（X-TBA-Auth-Key 认证）。
// TBA 的事件Key自带年份（2025casd），season 配置在这里用不上
type Adapter struct {
	cfg        *config.ProviderConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewTBAAdapter(cfg *config.ProviderConfig, _ int, logger *logrus.Logger) interfaces.ProviderAdapter {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

func (a *Adapter) GetName() string {
	return providerName
}

// FetchRoster 拉取赛事详情 + 队伍名单 + 赛程
func (a *Adapter) FetchRoster(ctx context.Context, eventKey string) (*model.ProviderRoster, error) {
	roster := &model.ProviderRoster{Provider: providerName}

	var ev model.TBAEvent
	if err := a.getJSON(ctx, fmt.Sprintf("/event/%s/simple", eventKey), &ev); err != nil {
		return nil, fmt.Errorf("获取赛事详情失败: %w", err)
	}
	roster.EventKey = ev.Key
	roster.EventName = ev.Name
	roster.StartDate = ev.StartDate
	roster.EndDate = ev.EndDate

	var teams []model.TBATeam
	if err := a.getJSON(ctx, fmt.Sprintf("/event/%s/teams/simple", eventKey), &teams); err != nil {
		return nil, fmt.Errorf("获取队伍名单失败: %w", err)
	}
	for _, t := range teams {
		roster.Teams = append(roster.Teams, model.ProviderTeam{TeamNumber: t.TeamNumber, Name: t.Nickname})
	}

	matches, err := a.FetchMatches(ctx, eventKey, 0)
	if err != nil {
		return nil, err
	}
	// TBA 的名册导入只收资格赛：淘汰赛的联队对阵在赛程公布前会反复变动，
	// 实时查询（FetchMatches）仍返回全部场次
	roster.Matches = qualificationMatches(matches)
	return roster, nil
}

// qualificationMatches 过滤出资格赛场次
func qualificationMatches(matches []model.ProviderMatch) []model.ProviderMatch {
	out := make([]model.ProviderMatch, 0, len(matches))
	for _, m := range matches {
		if m.Level == model.LevelQualification {
			out = append(out, m)
		}
	}
	return out
}

// FetchMatches 拉取赛程并映射为统一场次。TBA 不支持按队过滤赛程接口里的
// simple 变体，teamNumber>0 时在本地过滤
func (a *Adapter) FetchMatches(ctx context.Context, eventKey string, teamNumber int) ([]model.ProviderMatch, error) {
	var raw []model.TBAMatch
	if err := a.getJSON(ctx, fmt.Sprintf("/event/%s/matches/simple", eventKey), &raw); err != nil {
		return nil, fmt.Errorf("获取赛程失败: %w", err)
	}

	// 同一场次号出现两条时后者覆盖前者（map 天然去重）
	byLabel := make(map[string]model.ProviderMatch)
	var order []string
	for _, m := range raw {
		pm, ok := convertMatch(m)
		if !ok {
			continue
		}
		if teamNumber > 0 && !containsTeam(pm, teamNumber) {
			continue
		}
		if _, seen := byLabel[pm.Label]; !seen {
			order = append(order, pm.Label)
		}
		byLabel[pm.Label] = pm
	}

	out := make([]model.ProviderMatch, 0, len(order))
	for _, label := range order {
		out = append(out, byLabel[label])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchNumber < out[j].MatchNumber })
	return out, nil
}

// convertMatch TBA场次 → 统一场次。qm→Q{n}；qf/sf/f→{QF|SF|F}{set}-{n}
func convertMatch(m model.TBAMatch) (model.ProviderMatch, bool) {
	var label string
	level := model.LevelPlayoff
	switch m.CompLevel {
	case "qm":
		label = fmt.Sprintf("Q%d", m.MatchNumber)
		level = model.LevelQualification
	case "qf":
		label = fmt.Sprintf("QF%d-%d", m.SetNumber, m.MatchNumber)
	case "sf":
		label = fmt.Sprintf("SF%d-%d", m.SetNumber, m.MatchNumber)
	case "f":
		label = fmt.Sprintf("F%d-%d", m.SetNumber, m.MatchNumber)
	default:
		return model.ProviderMatch{}, false
	}

	var slots []model.ProviderTeamSlot
	for i, k := range m.Alliances.Red.TeamKeys {
		slots = append(slots, model.ProviderTeamSlot{TeamNumber: teamKeyToNumber(k), Station: fmt.Sprintf("Red%d", i+1)})
	}
	for i, k := range m.Alliances.Blue.TeamKeys {
		slots = append(slots, model.ProviderTeamSlot{TeamNumber: teamKeyToNumber(k), Station: fmt.Sprintf("Blue%d", i+1)})
	}
	return model.ProviderMatch{Label: label, Level: level, TeamSlots: slots, MatchNumber: m.MatchNumber}, true
}

// teamKeyToNumber "frc620" → 620
func teamKeyToNumber(key string) int {
	n := 0
	fmt.Sscanf(strings.TrimPrefix(key, "frc"), "%d", &n)
	return n
}

func containsTeam(m model.ProviderMatch, teamNumber int) bool {
	for _, s := range m.TeamSlots {
		if s.TeamNumber == teamNumber {
			return true
		}
	}
	return false
}

func (a *Adapter) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-TBA-Auth-Key", a.cfg.AuthKey)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return adapter.NewProviderError(providerName, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return adapter.NewProviderError(providerName, resp.StatusCode, nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}
	return nil
}
