package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"ScoutSync/internal/model"
	"ScoutSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ExportService 把观察记录平铺导出为 CSV，一行一条记录。
// 列顺序固定，下游表格分析依赖该顺序
type ExportService struct {
	logger     *logrus.Logger
	reportRepo repository.ReportRepository
}

func NewExportService(db *gorm.DB, logger *logrus.Logger) *ExportService {
	return &ExportService{
		logger:     logger,
		reportRepo: repository.NewReportRepository(db),
	}
}

var csvHeader = []string{
	"Competition ID", "Match Ref", "Team Number", "Scout Name",
	"Auto Coral L1", "Auto Coral L2", "Auto Coral L3", "Auto Coral L4",
	"Auto Algae Barge", "Auto Algae Processor", "Auto Leave Zone",
	"Teleop Coral L1", "Teleop Coral L2", "Teleop Coral L3", "Teleop Coral L4",
	"Teleop Algae Barge", "Teleop Algae Processor",
	"Endgame", "Played Defense?", "Defense Rating",
	"Driver Skill", "Robot Speed", "Minor Fouls", "Major Fouls", "Notes",
}

// ExportCSV 导出指定赛事的全部观察记录；competitionID 为空时导出全季数据
func (s *ExportService) ExportCSV(ctx context.Context, competitionID string) ([]byte, error) {
	var (
		list []*model.ScoutingReport
		err  error
	)
	if competitionID == "" {
		list, err = s.reportRepo.ListAll(ctx)
	} else {
		list, err = s.reportRepo.ListByCompetition(ctx, competitionID)
	}
	if err != nil {
		return nil, fmt.Errorf("查询观察记录失败: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("写入CSV表头失败: %w", err)
	}
	for _, r := range list {
		if err := w.Write(csvRow(r)); err != nil {
			return nil, fmt.Errorf("写入CSV行失败: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("CSV落盘失败: %w", err)
	}
	s.logger.Infof("CSV导出完成: %d条记录", len(list))
	return buf.Bytes(), nil
}

func csvRow(r *model.ScoutingReport) []string {
	// 防守评分仅在打过防守时输出，否则留空
	defense := ""
	if r.PlayedDefense && r.DefenseRating != nil {
		defense = strconv.Itoa(*r.DefenseRating)
	}
	return []string{
		r.CompetitionID, string(r.MatchRef), strconv.Itoa(r.TeamNumber), r.ScoutName,
		strconv.Itoa(r.AutoCoralL1), strconv.Itoa(r.AutoCoralL2),
		strconv.Itoa(r.AutoCoralL3), strconv.Itoa(r.AutoCoralL4),
		strconv.Itoa(r.AutoAlgaeBarge), strconv.Itoa(r.AutoAlgaeProcessor),
		yesNo(r.AutoLeaveZone),
		strconv.Itoa(r.TeleopCoralL1), strconv.Itoa(r.TeleopCoralL2),
		strconv.Itoa(r.TeleopCoralL3), strconv.Itoa(r.TeleopCoralL4),
		strconv.Itoa(r.TeleopAlgaeBarge), strconv.Itoa(r.TeleopAlgaeProcessor),
		string(r.Endgame), yesNo(r.PlayedDefense), defense,
		strconv.Itoa(r.DriverSkill), strconv.Itoa(r.RobotSpeed),
		strconv.Itoa(r.MinorFouls), strconv.Itoa(r.MajorFouls), r.Notes,
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
