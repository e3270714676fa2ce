package frcevents

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"ScoutSync/internal/adapter"
	"ScoutSync/internal/config"
	"ScoutSync/internal/interfaces"
	"ScoutSync/internal/model"
	"ScoutSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

const providerName = "frcevents"

// teamsPageSize FRC Events API 队伍接口单页条数
const teamsPageSize = 100

func init() {
	adapter.RegisterFactory(providerName, NewFRCEventsAdapter)
}

// Adapter FIRST官方 FRC Events API v3 适配器（Basic认证 username:key）
type Adapter struct {
	cfg        *config.ProviderConfig
	season     int
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewFRCEventsAdapter(cfg *config.ProviderConfig, season int, logger *logrus.Logger) interfaces.ProviderAdapter {
	return &Adapter{
		cfg:        cfg,
		season:     season,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

func (a *Adapter) GetName() string {
	return providerName
}

// FetchRoster 拉取赛事详情 + 队伍名单（翻页）+ 赛程
func (a *Adapter) FetchRoster(ctx context.Context, eventKey string) (*model.ProviderRoster, error) {
	roster := &model.ProviderRoster{Provider: providerName}

	// 1. 赛事详情
	var envEvents model.FRCEventsEnvelope
	if err := a.getJSON(ctx, fmt.Sprintf("/%d/events?eventCode=%s", a.season, eventKey), &envEvents); err != nil {
		return nil, fmt.Errorf("获取赛事详情失败: %w", err)
	}
	if len(envEvents.Events) == 0 {
		return nil, &adapter.ProviderError{Provider: providerName, Kind: adapter.KindNotFound, StatusCode: 404}
	}
	ev := envEvents.Events[0]
	roster.EventKey = eventKey
	roster.EventName = ev.Name
	roster.StartDate = ev.DateStart
	roster.EndDate = ev.DateEnd

	// 2. 队伍名单（按页拉到尾）
	page := 1
	for {
		var envTeams model.FRCTeamsEnvelope
		if err := a.getJSON(ctx, fmt.Sprintf("/%d/teams?eventCode=%s&page=%d", a.season, eventKey, page), &envTeams); err != nil {
			return nil, fmt.Errorf("获取队伍名单失败(page=%d): %w", page, err)
		}
		for _, t := range envTeams.Teams {
			name := t.NameShort
			if name == "" {
				name = t.NameFull
			}
			roster.Teams = append(roster.Teams, model.ProviderTeam{TeamNumber: t.TeamNumber, Name: name})
		}
		if len(envTeams.Teams) < teamsPageSize {
			break
		}
		page++
	}

	// 3. 赛程
	matches, err := a.FetchMatches(ctx, eventKey, 0)
	if err != nil {
		return nil, err
	}
	roster.Matches = matches
	return roster, nil
}

// FetchMatches 拉取赛程。teamNumber>0 时让API只返回该队参加的场次
func (a *Adapter) FetchMatches(ctx context.Context, eventKey string, teamNumber int) ([]model.ProviderMatch, error) {
	var all []model.ProviderMatch
	for _, level := range []string{"Qualification", "Playoff"} {
		path := fmt.Sprintf("/%d/schedule/%s?tournamentLevel=%s", a.season, eventKey, level)
		if teamNumber > 0 {
			path += fmt.Sprintf("&teamNumber=%d", teamNumber)
		}
		var env model.FRCScheduleEnvelope
		if err := a.getJSON(ctx, path, &env); err != nil {
			// 有些赛事没有淘汰赛赛程，404 不算整体失败
			if level == "Playoff" && adapter.IsNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("获取%s赛程失败: %w", level, err)
		}
		for _, m := range env.Schedule {
			all = append(all, convertMatch(m))
		}
	}
	return all, nil
}

func convertMatch(m model.FRCScheduleMatch) model.ProviderMatch {
	var slots []model.ProviderTeamSlot
	for _, t := range m.Teams {
		if t.Surrogate {
			continue
		}
		slots = append(slots, model.ProviderTeamSlot{TeamNumber: t.TeamNumber, Station: t.Station})
	}
	level := model.LevelPractice
	switch m.TournamentLevel {
	case "Qualification":
		level = model.LevelQualification
	case "Playoff":
		level = model.LevelPlayoff
	}
	return model.ProviderMatch{
		Label:       m.Description,
		Level:       level,
		TeamSlots:   slots,
		MatchNumber: m.MatchNumber,
	}
}

// getJSON 带重试的GET+解码。非2xx按状态码归类为类型化失败
func (a *Adapter) getJSON(ctx context.Context, path string, out interface{}) error {
	url := a.cfg.BaseURL + path
	attempts := a.cfg.RetryCount + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		auth := base64.StdEncoding.EncodeToString([]byte(a.cfg.Username + ":" + a.cfg.AuthKey))
		req.Header.Set("Authorization", "Basic "+auth)
		req.Header.Set("Accept", "application/json")

		resp, err := a.httpClient.Do(req)
		if err != nil {
			lastErr = adapter.NewProviderError(providerName, 0, err)
			continue // 网络错误可重试
		}
		func() {
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				lastErr = adapter.NewProviderError(providerName, resp.StatusCode, nil)
				return
			}
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				lastErr = fmt.Errorf("解析响应失败: %w", err)
				return
			}
			lastErr = nil
		}()
		if lastErr == nil {
			return nil
		}
		// 4xx 重试没有意义，直接返回
		if pe, ok := adapter.AsProviderError(lastErr); ok && pe.StatusCode >= 400 && pe.StatusCode < 500 {
			return lastErr
		}
	}
	return lastErr
}
