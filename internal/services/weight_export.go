package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/yukikurage/life-record-api/internal/constants"
)

// utf8BOM lets spreadsheet applications detect the encoding.
const utf8BOM = "\ufeff"

var exportHeader = []string{"date", "weight", "remark", "week_num", "create_time"}

// ExportFilename returns the attachment name for an export started now.
func (s *WeightService) ExportFilename() string {
	return "weight_records_" + s.now().Format(constants.ExportNameLayout) + ".csv"
}

// Export writes every record of the user as CSV, newest first.
func (s *WeightService) Export(ctx context.Context, userID uint64, w io.Writer) error {
	records, err := s.weightRepo.ListAll(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list weight records: %w", err)
	}

	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range records {
		remark := ""
		if r.Remark != nil {
			remark = *r.Remark
		}
		row := []string{
			r.RecordDate.Format(constants.DateLayout),
			strconv.FormatFloat(r.Weight, 'f', 1, 64),
			remark,
			r.WeekNum,
			r.CreatedAt.Local().Format(constants.ExportTimeLayout),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
