package handlers

import (
	"net/http"

	"github.com/yukikurage/portal-api/internal/dto"
	"github.com/yukikurage/portal-api/internal/services"
)

func (suite *APITestSuite) createNote(date, content string) uint64 {
	return suite.create("/api/daily-notes", map[string]interface{}{"date": date, "content": content})
}

func (suite *APITestSuite) TestCreateNote() {
	id := suite.createNote("2024-05-01", "  hola mundo ")

	w := suite.perform(http.MethodGet, "/api/daily-notes/date/2024-05-01", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var note dto.DailyNoteDTO
	suite.decode(w, &note)
	suite.Equal(id, note.ID)
	suite.Equal("2024-05-01", note.Date)
	suite.Equal("hola mundo", note.Content)

	cases := []map[string]interface{}{
		{"date": "2024-05-01", "content": "otra"},
		{"date": "2024-05-02", "content": "ab"},
		{"content": "sin fecha"},
		{"date": "01-05-2024", "content": "formato"},
	}
	for _, body := range cases {
		suite.Equal(http.StatusBadRequest, suite.perform(http.MethodPost, "/api/daily-notes", body).Code, body)
	}

	suite.Equal(http.StatusBadRequest, suite.perform(http.MethodGet, "/api/daily-notes/date/mayo", nil).Code)
	suite.Equal(http.StatusNotFound, suite.perform(http.MethodGet, "/api/daily-notes/date/2024-05-09", nil).Code)
}

func (suite *APITestSuite) TestCreateOrUpdateNote() {
	w := suite.perform(http.MethodPost, "/api/daily-notes/create-or-update", map[string]interface{}{"date": "2024-05-03", "content": "primera"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var note dto.DailyNoteDTO
	suite.decode(w, &note)
	suite.Equal("primera", note.Content)

	w = suite.perform(http.MethodPost, "/api/daily-notes/create-or-update", map[string]interface{}{"date": "2024-05-03", "content": ""})
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Nota eliminada correctamente")

	var exists map[string]bool
	suite.decode(suite.perform(http.MethodGet, "/api/daily-notes/exists/2024-05-03", nil), &exists)
	suite.False(exists["exists"])
}

func (suite *APITestSuite) TestUpdateAndDeleteNotes() {
	suite.createNote("2024-05-01", "uno")
	suite.createNote("2024-05-02", "dos")

	w := suite.perform(http.MethodPut, "/api/daily-notes/1", map[string]interface{}{"date": "2024-05-02"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.perform(http.MethodPut, "/api/daily-notes/date/2024-05-02", map[string]interface{}{"content": "dos bis"})
	suite.Require().Equal(http.StatusOK, w.Code)
	var note dto.DailyNoteDTO
	suite.decode(w, &note)
	suite.Equal("dos bis", note.Content)

	suite.Equal(http.StatusNotFound, suite.perform(http.MethodPut, "/api/daily-notes/date/2024-06-01", map[string]interface{}{"content": "nada"}).Code)

	suite.Equal(http.StatusNoContent, suite.perform(http.MethodDelete, "/api/daily-notes/date/2024-05-02", nil).Code)
	suite.Equal(http.StatusNotFound, suite.perform(http.MethodDelete, "/api/daily-notes/date/2024-05-02", nil).Code)
	suite.Equal(http.StatusNoContent, suite.perform(http.MethodDelete, "/api/daily-notes/1", nil).Code)
	suite.Equal(http.StatusNotFound, suite.perform(http.MethodDelete, "/api/daily-notes/1", nil).Code)
}

func (suite *APITestSuite) TestNoteViews() {
	suite.createNote("2024-05-14", "abc")
	suite.createNote("2024-05-02", "abcd")
	suite.createNote("2024-02-10", "abcde")

	var page dto.PageResponse[dto.DailyNoteDTO]
	suite.decode(suite.perform(http.MethodGet, "/api/daily-notes?startDate=2024-05-01&endDate=2024-05-31", nil), &page)
	suite.Equal(int64(2), page.TotalElements)
	suite.Equal("2024-05-14", page.Content[0].Date)

	suite.Equal(http.StatusBadRequest, suite.perform(http.MethodGet, "/api/daily-notes?startDate=2024-06-01&endDate=2024-05-01", nil).Code)

	var notes []dto.DailyNoteDTO
	suite.decode(suite.perform(http.MethodGet, "/api/daily-notes/month/2024/5", nil), &notes)
	suite.Len(notes, 2)
	suite.decode(suite.perform(http.MethodGet, "/api/daily-notes/year/2024", nil), &notes)
	suite.Len(notes, 3)
	suite.decode(suite.perform(http.MethodGet, "/api/daily-notes/date-range?startDate=2024-02-01&endDate=2024-05-02", nil), &notes)
	suite.Len(notes, 2)
	suite.decode(suite.perform(http.MethodGet, "/api/daily-notes/search?content=BCD", nil), &notes)
	suite.Len(notes, 2)

	suite.Equal(http.StatusBadRequest, suite.perform(http.MethodGet, "/api/daily-notes/month/2024/13", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.perform(http.MethodGet, "/api/daily-notes/date-range?startDate=2024-02-01", nil).Code)

	var byDate map[string]string
	suite.decode(suite.perform(http.MethodGet, "/api/daily-notes/map?startDate=2024-05-01&endDate=2024-05-31", nil), &byDate)
	suite.Equal(map[string]string{"2024-05-14": "abc", "2024-05-02": "abcd"}, byDate)

	var stats services.NoteStats
	suite.decode(suite.perform(http.MethodGet, "/api/daily-notes/stats", nil), &stats)
	suite.Equal(int64(3), stats.Total)
	suite.Equal(int64(4), stats.PromedioCaracteres)
}
