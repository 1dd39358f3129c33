package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/life-record-api/internal/dto"
	"github.com/yukikurage/life-record-api/internal/models"
	"github.com/yukikurage/life-record-api/internal/repository"
	"github.com/yukikurage/life-record-api/internal/testutil"
	"github.com/yukikurage/life-record-api/internal/utils"
	"gorm.io/gorm"
)

type WeightServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *WeightService
	ctx     context.Context
	user    *models.User
}

func (suite *WeightServiceTestSuite) SetupTest() {
	suite.db = testutil.NewDB(suite.T())
	suite.service = NewWeightService(repository.NewWeightRepository(suite.db))
	suite.ctx = context.Background()
	suite.user = testutil.CreateUser(suite.T(), suite.db, "alice")
	suite.setNow(2024, time.January, 2)
}

func (suite *WeightServiceTestSuite) setNow(year int, month time.Month, day int) {
	now := time.Date(year, month, day, 9, 30, 0, 0, time.Local)
	suite.service.now = func() time.Time { return now }
}

func (suite *WeightServiceTestSuite) add(year int, month time.Month, day int, weight float64) *dto.WeightRecordDTO {
	record, err := suite.addFor(suite.user.ID, year, month, day, weight)
	suite.Require().NoError(err)
	return record
}

func (suite *WeightServiceTestSuite) addFor(userID uint64, year int, month time.Month, day int, weight float64) (*dto.WeightRecordDTO, error) {
	date := dto.NewDate(time.Date(year, month, day, 0, 0, 0, 0, time.Local))
	return suite.service.AddRecord(suite.ctx, userID, dto.AddWeightRecordRequest{
		RecordDate: &date,
		Weight:     &weight,
	})
}

func (suite *WeightServiceTestSuite) setTarget(weight float64) *dto.WeightTargetDTO {
	target, err := suite.service.SetTarget(suite.ctx, suite.user.ID, dto.SetWeightTargetRequest{TargetWeight: &weight})
	suite.Require().NoError(err)
	return target
}

func (suite *WeightServiceTestSuite) TestAddRecord_DerivesWeekAndRounds() {
	record := suite.add(2024, time.December, 30, 70.46)

	suite.Equal("202501", record.WeekNum)
	suite.Equal(70.5, record.Weight)
	suite.Equal("2024-12-30", record.RecordDate.Format("2006-01-02"))
}

func (suite *WeightServiceTestSuite) TestAddRecord_DefaultsToToday() {
	weight := 68.0
	record, err := suite.service.AddRecord(suite.ctx, suite.user.ID, dto.AddWeightRecordRequest{Weight: &weight})
	suite.Require().NoError(err)
	suite.Equal("2024-01-02", record.RecordDate.Format("2006-01-02"))
}

func (suite *WeightServiceTestSuite) TestAddRecord_DuplicateDate() {
	suite.add(2024, time.January, 1, 70.5)

	_, err := suite.addFor(suite.user.ID, 2024, time.January, 1, 71.0)
	suite.ErrorIs(err, ErrWeightRecordExists)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.WeightRecord{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *WeightServiceTestSuite) TestAddRecord_SameDateDifferentUsers() {
	other := testutil.CreateUser(suite.T(), suite.db, "bob")
	suite.add(2024, time.January, 1, 70.5)

	_, err := suite.addFor(other.ID, 2024, time.January, 1, 80.0)
	suite.NoError(err)
}

func (suite *WeightServiceTestSuite) TestUpdateRecord_KeepsDate() {
	record := suite.add(2024, time.January, 1, 70.5)

	updated, err := suite.service.UpdateRecord(suite.ctx, suite.user.ID, record.ID, dto.UpdateWeightRecordRequest{
		Weight: dto.Some(69.94),
		Remark: dto.Some("after run"),
	})
	suite.Require().NoError(err)
	suite.Equal(69.9, updated.Weight)
	suite.Equal("202401", updated.WeekNum)
	suite.Require().NotNil(updated.Remark)
	suite.Equal("after run", *updated.Remark)

	cleared, err := suite.service.UpdateRecord(suite.ctx, suite.user.ID, record.ID, dto.UpdateWeightRecordRequest{
		Remark: dto.Null[string](),
	})
	suite.Require().NoError(err)
	suite.Nil(cleared.Remark)
	suite.Equal(69.9, cleared.Weight)
}

func (suite *WeightServiceTestSuite) TestUpdateRecord_ForeignRecord() {
	other := testutil.CreateUser(suite.T(), suite.db, "bob")
	record, err := suite.addFor(other.ID, 2024, time.January, 1, 80.0)
	suite.Require().NoError(err)

	_, err = suite.service.UpdateRecord(suite.ctx, suite.user.ID, record.ID, dto.UpdateWeightRecordRequest{
		Weight: dto.Some(60.0),
	})
	suite.ErrorIs(err, ErrWeightRecordNotFound)
}

func (suite *WeightServiceTestSuite) TestDeleteRecord() {
	record := suite.add(2024, time.January, 1, 70.5)

	suite.Require().NoError(suite.service.DeleteRecord(suite.ctx, suite.user.ID, record.ID))
	suite.ErrorIs(suite.service.DeleteRecord(suite.ctx, suite.user.ID, record.ID), ErrWeightRecordNotFound)
}

func (suite *WeightServiceTestSuite) TestBatchDelete_ReportsRequestedCount() {
	other := testutil.CreateUser(suite.T(), suite.db, "bob")
	first := suite.add(2024, time.January, 1, 70.5)
	second := suite.add(2024, time.January, 2, 71.0)
	foreign, err := suite.addFor(other.ID, 2024, time.January, 1, 80.0)
	suite.Require().NoError(err)

	count, err := suite.service.BatchDelete(suite.ctx, suite.user.ID, []uint64{first.ID, second.ID, foreign.ID})
	suite.Require().NoError(err)
	suite.Equal(3, count)

	var remaining []models.WeightRecord
	suite.Require().NoError(suite.db.Find(&remaining).Error)
	suite.Require().Len(remaining, 1)
	suite.Equal(foreign.ID, remaining[0].ID)
}

func (suite *WeightServiceTestSuite) TestWeekly() {
	suite.add(2024, time.January, 1, 70.5)
	suite.add(2024, time.January, 2, 71.0)

	stats, err := suite.service.Weekly(suite.ctx, suite.user.ID, "202401")
	suite.Require().NoError(err)

	suite.Equal("202401", stats.WeekNum)
	suite.Len(stats.Records, 2)
	suite.Equal(70.8, stats.AvgWeight)
	suite.Equal(71.0, stats.MaxWeight)
	suite.Equal(70.5, stats.MinWeight)
	suite.Equal(0.0, stats.DiffLastWeek)
}

func (suite *WeightServiceTestSuite) TestWeekly_DiffAcrossYearBoundary() {
	// 2023-12-28 is in ISO week 2023-52, the week before 2024-01.
	suite.add(2023, time.December, 28, 72.0)
	suite.add(2024, time.January, 3, 71.0)

	stats, err := suite.service.Weekly(suite.ctx, suite.user.ID, "")
	suite.Require().NoError(err)
	suite.Equal("202401", stats.WeekNum)
	suite.Equal(-1.0, stats.DiffLastWeek)
}

func (suite *WeightServiceTestSuite) TestWeekly_EmptyWeek() {
	stats, err := suite.service.Weekly(suite.ctx, suite.user.ID, "202410")
	suite.Require().NoError(err)
	suite.Empty(stats.Records)
	suite.Equal(0.0, stats.AvgWeight)
	suite.Equal(0.0, stats.MaxWeight)
	suite.Equal(0.0, stats.MinWeight)
}

func (suite *WeightServiceTestSuite) TestWeekly_InvalidWeekNum() {
	_, err := suite.service.Weekly(suite.ctx, suite.user.ID, "202460")
	suite.ErrorIs(err, utils.ErrInvalidWeekNum)
}

func (suite *WeightServiceTestSuite) TestMonthly_PreviousMonthAcrossYear() {
	suite.add(2023, time.December, 15, 72.0)
	suite.add(2023, time.December, 31, 71.0)
	suite.add(2024, time.January, 1, 70.0)
	suite.add(2024, time.January, 31, 69.0)
	suite.add(2024, time.February, 1, 50.0)

	stats, err := suite.service.Monthly(suite.ctx, suite.user.ID, 2024, time.January)
	suite.Require().NoError(err)

	suite.Equal(2024, stats.Year)
	suite.Equal(1, stats.Month)
	suite.Len(stats.Records, 2)
	suite.Equal(69.5, stats.AvgWeight)
	suite.Equal(-2.0, stats.DiffLastMonth)
}

func (suite *WeightServiceTestSuite) TestMonthly_DefaultsToCurrentMonth() {
	stats, err := suite.service.Monthly(suite.ctx, suite.user.ID, 0, 0)
	suite.Require().NoError(err)
	suite.Equal(2024, stats.Year)
	suite.Equal(1, stats.Month)
}

func (suite *WeightServiceTestSuite) TestMonthly_FillsOnlyMissingPart() {
	suite.add(2023, time.January, 10, 72.0)
	suite.add(2024, time.March, 5, 68.0)

	stats, err := suite.service.Monthly(suite.ctx, suite.user.ID, 2023, 0)
	suite.Require().NoError(err)
	suite.Equal(2023, stats.Year)
	suite.Equal(1, stats.Month)
	suite.Require().Len(stats.Records, 1)
	suite.Equal(72.0, stats.AvgWeight)

	stats, err = suite.service.Monthly(suite.ctx, suite.user.ID, 0, time.March)
	suite.Require().NoError(err)
	suite.Equal(2024, stats.Year)
	suite.Equal(3, stats.Month)
	suite.Require().Len(stats.Records, 1)
	suite.Equal(68.0, stats.AvgWeight)
}

func (suite *WeightServiceTestSuite) TestSetTarget_SingleActive() {
	suite.setTarget(65)
	suite.setTarget(63)
	last := suite.setTarget(60.04)

	var active []models.WeightTarget
	suite.Require().NoError(suite.db.Where("user_id = ? AND is_active = 1", suite.user.ID).Find(&active).Error)
	suite.Require().Len(active, 1)
	suite.Equal(last.ID, active[0].ID)
	suite.Equal(60.0, active[0].TargetWeight)

	var total int64
	suite.Require().NoError(suite.db.Model(&models.WeightTarget{}).Count(&total).Error)
	suite.Equal(int64(3), total)

	target, err := suite.service.ActiveTarget(suite.ctx, suite.user.ID)
	suite.Require().NoError(err)
	suite.Equal(last.ID, target.ID)
}

func (suite *WeightServiceTestSuite) TestActiveTarget_None() {
	target, err := suite.service.ActiveTarget(suite.ctx, suite.user.ID)
	suite.Require().NoError(err)
	suite.Nil(target)
}

func (suite *WeightServiceTestSuite) TestSetTarget_UnknownUserRollsBack() {
	weight := 60.0
	_, err := suite.service.SetTarget(suite.ctx, 9999, dto.SetWeightTargetRequest{TargetWeight: &weight})
	suite.ErrorIs(err, ErrFailedToSetTarget)

	var total int64
	suite.Require().NoError(suite.db.Model(&models.WeightTarget{}).Count(&total).Error)
	suite.Equal(int64(0), total)
}

func (suite *WeightServiceTestSuite) TestTodayStat() {
	suite.add(2024, time.January, 1, 70.5)
	suite.add(2024, time.January, 2, 70.1)
	suite.setTarget(65)

	stat, err := suite.service.TodayStat(suite.ctx, suite.user.ID)
	suite.Require().NoError(err)

	suite.Require().NotNil(stat.TodayWeight)
	suite.Equal(70.1, *stat.TodayWeight)
	suite.Equal(-0.4, stat.DiffYesterday)
	suite.Require().NotNil(stat.TargetWeight)
	suite.Equal(5.1, stat.TargetDiff)
}

func (suite *WeightServiceTestSuite) TestTodayStat_NoData() {
	stat, err := suite.service.TodayStat(suite.ctx, suite.user.ID)
	suite.Require().NoError(err)

	suite.Nil(stat.TodayWeight)
	suite.Nil(stat.TargetWeight)
	suite.Equal(0.0, stat.DiffYesterday)
	suite.Equal(0.0, stat.TargetDiff)
}

func (suite *WeightServiceTestSuite) TestToday() {
	none, err := suite.service.Today(suite.ctx, suite.user.ID)
	suite.Require().NoError(err)
	suite.Nil(none)

	suite.add(2024, time.January, 2, 70.1)
	today, err := suite.service.Today(suite.ctx, suite.user.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(today)
	suite.Equal(70.1, today.Weight)
}

func (suite *WeightServiceTestSuite) TestHistory_DateRange() {
	suite.add(2024, time.January, 1, 70.5)
	suite.add(2024, time.January, 2, 70.1)
	suite.add(2024, time.January, 3, 69.8)

	start := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.Local)
	history, err := suite.service.History(suite.ctx, suite.user.ID, WeightHistoryInput{
		StartDate: &start,
		Page:      utils.PaginationParams{Skip: 0, Limit: 10},
	})
	suite.Require().NoError(err)
	suite.Equal(int64(2), history.Total)
	suite.Require().Len(history.Records, 2)
	suite.Equal("2024-01-03", history.Records[0].RecordDate.Format("2006-01-02"))
}

func (suite *WeightServiceTestSuite) TestExport() {
	remark := "morning, fasted"
	date := dto.NewDate(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local))
	weight := 70.5
	_, err := suite.service.AddRecord(suite.ctx, suite.user.ID, dto.AddWeightRecordRequest{
		RecordDate: &date,
		Weight:     &weight,
		Remark:     &remark,
	})
	suite.Require().NoError(err)
	suite.add(2024, time.January, 2, 70.0)

	var buf bytes.Buffer
	suite.Require().NoError(suite.service.Export(suite.ctx, suite.user.ID, &buf))

	out := buf.String()
	suite.True(strings.HasPrefix(out, utf8BOM))

	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, utf8BOM))).ReadAll()
	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)
	suite.Equal(exportHeader, rows[0])
	suite.Equal([]string{"2024-01-02", "70.0", "", "202401"}, rows[1][:4])
	suite.Equal([]string{"2024-01-01", "70.5", "morning, fasted", "202401"}, rows[2][:4])
}

func (suite *WeightServiceTestSuite) TestExportFilename() {
	suite.Equal("weight_records_20240102093000.csv", suite.service.ExportFilename())
}

func TestWeightServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WeightServiceTestSuite))
}
