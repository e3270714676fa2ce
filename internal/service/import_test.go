package service

import (
	"context"
	"testing"

	"ScoutSync/internal/adapter"
	"ScoutSync/internal/config"
	"ScoutSync/internal/interfaces"
	"ScoutSync/internal/model"

	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeCompetitionRepo struct {
	saved *model.Competition
}

func (f *fakeCompetitionRepo) Upsert(ctx context.Context, c *model.Competition) error {
	c.ID = "comp-fake"
	f.saved = c
	return nil
}
func (f *fakeCompetitionRepo) List(ctx context.Context) ([]*model.Competition, error) {
	return nil, nil
}
func (f *fakeCompetitionRepo) GetByID(ctx context.Context, id string) (*model.Competition, error) {
	return f.saved, nil
}
func (f *fakeCompetitionRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeTeamRepo struct {
	batch []*model.Team
}

func (f *fakeTeamRepo) Upsert(ctx context.Context, t *model.Team) error { return nil }
func (f *fakeTeamRepo) UpsertBatch(ctx context.Context, teams []*model.Team) error {
	f.batch = teams
	return nil
}
func (f *fakeTeamRepo) List(ctx context.Context) ([]*model.Team, error) { return nil, nil }
func (f *fakeTeamRepo) Delete(ctx context.Context, teamNumber int) error { return nil }

type fakeMatchRepo struct {
	upserts []*model.Match
}

func (f *fakeMatchRepo) Upsert(ctx context.Context, m *model.Match) error {
	f.upserts = append(f.upserts, m)
	return nil
}
func (f *fakeMatchRepo) ListByCompetition(ctx context.Context, competitionID string) ([]*model.Match, error) {
	return f.upserts, nil
}
func (f *fakeMatchRepo) GetByID(ctx context.Context, id string) (*model.Match, error) {
	return nil, nil
}
func (f *fakeMatchRepo) Delete(ctx context.Context, id string) error { return nil }

type stubAdapter struct {
	roster *model.ProviderRoster
}

func (s *stubAdapter) GetName() string { return "stubsource" }
func (s *stubAdapter) FetchRoster(ctx context.Context, eventKey string) (*model.ProviderRoster, error) {
	return s.roster, nil
}
func (s *stubAdapter) FetchMatches(ctx context.Context, eventKey string, teamNumber int) ([]model.ProviderMatch, error) {
	return s.roster.Matches, nil
}

func TestImportEvent(t *testing.T) {
	Convey("赛事名册导入", t, func() {
		roster := &model.ProviderRoster{
			Provider:  "stubsource",
			EventKey:  "2025casd",
			EventName: "San Diego Regional",
			Teams: []model.ProviderTeam{
				{TeamNumber: 254, Name: "The Cheesy Poofs"},
				{TeamNumber: 1678, Name: "Citrus Circuits"},
			},
			Matches: []model.ProviderMatch{
				{Label: "Q1", Level: model.LevelQualification},
				{Label: "Q1", Level: model.LevelQualification}, // 数据源偶发重复场次
				{Label: "SF1-2", Level: model.LevelPlayoff},
			},
		}
		adapter.RegisterFactory("stubsource", func(cfg *config.ProviderConfig, season int, logger *logrus.Logger) interfaces.ProviderAdapter {
			return &stubAdapter{roster: roster}
		})

		compRepo := &fakeCompetitionRepo{}
		teamRepo := &fakeTeamRepo{}
		matchRepo := &fakeMatchRepo{}
		svc := &ImportService{
			logger: logrus.New(),
			cfg: &config.Config{
				Providers: map[string]config.ProviderConfig{"stubsource": {}},
				Scouting:  config.ScoutingConfig{Season: 2025},
			},
			competitionRepo: compRepo,
			teamRepo:        teamRepo,
			matchRepo:       matchRepo,
		}

		result, err := svc.ImportEvent(context.Background(), "stubsource", "2025casd")
		So(err, ShouldBeNil)

		Convey("名册里的场次照单全收，淘汰赛一起入库", func() {
			So(result.MatchCount, ShouldEqual, 2)
			So(matchRepo.upserts, ShouldHaveLength, 2)
			So(matchRepo.upserts[0].Label, ShouldEqual, "Q1")
			So(matchRepo.upserts[1].Label, ShouldEqual, "SF1-2")
			So(matchRepo.upserts[1].Level, ShouldEqual, model.LevelPlayoff)
		})

		Convey("赛事带 event_key 入库", func() {
			So(compRepo.saved, ShouldNotBeNil)
			So(compRepo.saved.EventKey, ShouldNotBeNil)
			So(*compRepo.saved.EventKey, ShouldEqual, "2025casd")
			So(compRepo.saved.Name, ShouldEqual, "San Diego Regional")
		})

		Convey("队伍批量入库", func() {
			So(result.TeamCount, ShouldEqual, 2)
			So(teamRepo.batch, ShouldHaveLength, 2)
		})

		Convey("无 event_key 的名册不带指针入库", func() {
			bare := &model.ProviderRoster{Provider: "stubsource", EventName: "练习赛"}
			adapter.RegisterFactory("stubsource", func(cfg *config.ProviderConfig, season int, logger *logrus.Logger) interfaces.ProviderAdapter {
				return &stubAdapter{roster: bare}
			})
			_, err := svc.ImportEvent(context.Background(), "stubsource", "")
			So(err, ShouldBeNil)
			So(compRepo.saved.EventKey, ShouldBeNil)
		})
	})
}
