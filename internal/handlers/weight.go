package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/life-record-api/internal/dto"
	"github.com/yukikurage/life-record-api/internal/services"
	"github.com/yukikurage/life-record-api/internal/utils"
)

type WeightHandler struct {
	weightService *services.WeightService
}

func NewWeightHandler(weightService *services.WeightService) *WeightHandler {
	return &WeightHandler{weightService: weightService}
}

func (h *WeightHandler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var query dto.WeightHistoryQuery
	if !bindQuery(c, &query) {
		return
	}
	start, ok := optionalDate(c, "start_date", query.StartDate)
	if !ok {
		return
	}
	end, ok := optionalDate(c, "end_date", query.EndDate)
	if !ok {
		return
	}

	history, err := h.weightService.History(c.Request.Context(), userID, services.WeightHistoryInput{
		StartDate: start,
		EndDate:   end,
		Page:      utils.GetPaginationParams(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// Today returns today's record or null
func (h *WeightHandler) Today(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	record, err := h.weightService.Today(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *WeightHandler) Week(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var query dto.WeekQuery
	if !bindQuery(c, &query) {
		return
	}

	stats, err := h.weightService.Weekly(c.Request.Context(), userID, query.WeekNum)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *WeightHandler) Month(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var query dto.MonthQuery
	if !bindQuery(c, &query) {
		return
	}

	stats, err := h.weightService.Monthly(c.Request.Context(), userID, query.Year, time.Month(query.Month))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *WeightHandler) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.AddWeightRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.weightService.AddRecord(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *WeightHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateWeightRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.weightService.UpdateRecord(c.Request.Context(), userID, id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *WeightHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.weightService.DeleteRecord(c.Request.Context(), userID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Weight record deleted"})
}

func (h *WeightHandler) BatchDelete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.BatchDeleteRequest
	if !bindJSON(c, &req) {
		return
	}

	count, err := h.weightService.BatchDelete(c.Request.Context(), userID, req.IDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BatchDeleteResponse{Count: count})
}

// Export streams every record as a CSV attachment
func (h *WeightHandler) Export(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	// Buffer so a failed query can still produce a JSON error.
	var buf bytes.Buffer
	if err := h.weightService.Export(c.Request.Context(), userID, &buf); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+h.weightService.ExportFilename()+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// GetTarget returns the active target or null
func (h *WeightHandler) GetTarget(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	target, err := h.weightService.ActiveTarget(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}

func (h *WeightHandler) SetTarget(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.SetWeightTargetRequest
	if !bindJSON(c, &req) {
		return
	}

	target, err := h.weightService.SetTarget(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}

func (h *WeightHandler) TodayStat(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	stat, err := h.weightService.TodayStat(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stat)
}
