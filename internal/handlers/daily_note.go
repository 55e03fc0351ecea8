package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/portal-api/internal/dto"
	apierrors "github.com/yukikurage/portal-api/internal/errors"
	"github.com/yukikurage/portal-api/internal/models"
	"github.com/yukikurage/portal-api/internal/repository"
	"github.com/yukikurage/portal-api/internal/services"
	"github.com/yukikurage/portal-api/internal/utils"
)

type DailyNoteHandler struct {
	service *services.DailyNoteService
}

func NewDailyNoteHandler(service *services.DailyNoteService) *DailyNoteHandler {
	return &DailyNoteHandler{service: service}
}

// ListNotes returns one page of notes filtered by an optional date range and content text
func (h *DailyNoteHandler) ListNotes(c *gin.Context) {
	var filter repository.DailyNoteFilter
	var err error
	if filter.StartDate, err = utils.ParseOptionalDate(c.Query("startDate")); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	if filter.EndDate, err = utils.ParseOptionalDate(c.Query("endDate")); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	filter.Content = queryPtr(c, "content")

	page, err := h.service.Search(filter, pageRequest(c, "date", true))
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPageResponse(page, dto.ToDailyNoteDTO))
}

func (h *DailyNoteHandler) respondList(c *gin.Context, notes []models.DailyNote, err error) {
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToList(notes, dto.ToDailyNoteDTO))
}

func (h *DailyNoteHandler) respondNote(c *gin.Context, status int, note *models.DailyNote, err error) {
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(status, dto.ToDailyNoteDTO(*note))
}

func (h *DailyNoteHandler) ListAllNotes(c *gin.Context) {
	notes, err := h.service.List()
	h.respondList(c, notes, err)
}

func (h *DailyNoteHandler) GetNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	note, err := h.service.Get(id)
	h.respondNote(c, http.StatusOK, note, err)
}

func (h *DailyNoteHandler) GetNoteByDate(c *gin.Context) {
	date, ok := pathDate(c, "date")
	if !ok {
		return
	}
	note, err := h.service.GetByDate(date)
	h.respondNote(c, http.StatusOK, note, err)
}

func (h *DailyNoteHandler) CreateNote(c *gin.Context) {
	var req dto.CreateDailyNoteRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	note, err := h.service.Create(input)
	h.respondNote(c, http.StatusCreated, note, err)
}

// CreateOrUpdateNote upserts the note of a date; blank content deletes it
func (h *DailyNoteHandler) CreateOrUpdateNote(c *gin.Context) {
	var req dto.NoteContentRequest
	if !bindJSON(c, &req) {
		return
	}
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	note, err := h.service.CreateOrUpdate(date, req.Content)
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	if note == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Nota eliminada correctamente"})
		return
	}
	c.JSON(http.StatusOK, dto.ToDailyNoteDTO(*note))
}

func (h *DailyNoteHandler) UpdateNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateDailyNoteRequest
	if !bindJSON(c, &req) {
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	note, err := h.service.Update(id, patch)
	h.respondNote(c, http.StatusOK, note, err)
}

func (h *DailyNoteHandler) UpdateNoteByDate(c *gin.Context) {
	date, ok := pathDate(c, "date")
	if !ok {
		return
	}
	var req dto.NoteContentRequest
	if !bindJSON(c, &req) {
		return
	}
	note, err := h.service.UpdateByDate(date, req.Content)
	h.respondNote(c, http.StatusOK, note, err)
}

func (h *DailyNoteHandler) DeleteNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DailyNoteHandler) DeleteNoteByDate(c *gin.Context) {
	date, ok := pathDate(c, "date")
	if !ok {
		return
	}
	deleted, err := h.service.DeleteByDate(date)
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	if !deleted {
		apierrors.NotFound(c, "daily note not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DailyNoteHandler) ListNotesByMonth(c *gin.Context) {
	year, ok := pathInt(c, "year")
	if !ok {
		return
	}
	month, ok := pathInt(c, "month")
	if !ok {
		return
	}
	notes, err := h.service.ListByMonth(year, time.Month(month))
	h.respondList(c, notes, err)
}

func (h *DailyNoteHandler) ListNotesByYear(c *gin.Context) {
	year, ok := pathInt(c, "year")
	if !ok {
		return
	}
	notes, err := h.service.ListByYear(year)
	h.respondList(c, notes, err)
}

func (h *DailyNoteHandler) ListCurrentMonthNotes(c *gin.Context) {
	notes, err := h.service.ListCurrentMonth()
	h.respondList(c, notes, err)
}

func (h *DailyNoteHandler) ListNotesByDateRange(c *gin.Context) {
	from, ok := queryDate(c, "startDate")
	if !ok {
		return
	}
	to, ok := queryDate(c, "endDate")
	if !ok {
		return
	}
	notes, err := h.service.ListByDateRange(from, to)
	h.respondList(c, notes, err)
}

func (h *DailyNoteHandler) SearchNotes(c *gin.Context) {
	content, ok := c.GetQuery("content")
	if !ok {
		apierrors.BadRequest(c, "content is required")
		return
	}
	notes, err := h.service.SearchContent(content)
	h.respondList(c, notes, err)
}

func (h *DailyNoteHandler) NoteExists(c *gin.Context) {
	date, ok := pathDate(c, "date")
	if !ok {
		return
	}
	exists, err := h.service.Exists(date)
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// NotesMap returns the note content of each day in the range keyed by YYYY-MM-DD
func (h *DailyNoteHandler) NotesMap(c *gin.Context) {
	from, ok := queryDate(c, "startDate")
	if !ok {
		return
	}
	to, ok := queryDate(c, "endDate")
	if !ok {
		return
	}
	notes, err := h.service.NotesMap(from, to)
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (h *DailyNoteHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats()
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
