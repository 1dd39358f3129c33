package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/life-record-api/internal/dto"
	apierrors "github.com/yukikurage/life-record-api/internal/errors"
	"github.com/yukikurage/life-record-api/internal/services"
	"github.com/yukikurage/life-record-api/internal/utils"
)

type CheckinHandler struct {
	checkinService *services.CheckinService
}

func NewCheckinHandler(checkinService *services.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkinService: checkinService}
}

func (h *CheckinHandler) ListItems(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var query dto.CheckinItemQuery
	if !bindQuery(c, &query) {
		return
	}

	items, err := h.checkinService.ListItems(c.Request.Context(), userID, query.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CheckinHandler) CreateItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateCheckinItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.checkinService.CreateItem(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CheckinHandler) UpdateItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCheckinItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.checkinService.UpdateItem(c.Request.Context(), userID, id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem removes the item and all of its records
func (h *CheckinHandler) DeleteItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.checkinService.DeleteItem(c.Request.Context(), userID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Checkin item deleted"})
}

// Daily serves both ?date= and /date/:date; no date means today
func (h *CheckinHandler) Daily(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	raw := c.Param("date")
	if raw == "" {
		raw = c.Query("date")
	}

	var date time.Time
	if raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			apierrors.BadRequest(c, "Dates must use the YYYY-MM-DD format")
			return
		}
		date = parsed
	}

	daily, err := h.checkinService.Daily(c.Request.Context(), userID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, daily)
}

func (h *CheckinHandler) SaveRecord(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.SaveCheckinRecordRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.checkinService.SaveRecord(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *CheckinHandler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var query dto.CheckinHistoryQuery
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

	history, err := h.checkinService.History(c.Request.Context(), userID, services.CheckinHistoryInput{
		ItemID:    query.ItemID,
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
