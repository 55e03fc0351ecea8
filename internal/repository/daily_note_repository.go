package repository

import (
	"database/sql"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yukikurage/portal-api/internal/database"
	"github.com/yukikurage/portal-api/internal/models"
)

// GormDailyNoteRepository is a GORM implementation of DailyNoteRepository
type GormDailyNoteRepository struct {
	db *gorm.DB
}

// NewDailyNoteRepository creates a new DailyNoteRepository
func NewDailyNoteRepository(db *gorm.DB) DailyNoteRepository {
	return &GormDailyNoteRepository{db: db}
}

func (r *GormDailyNoteRepository) Create(note *models.DailyNote) error {
	return r.db.Create(note).Error
}

func (r *GormDailyNoteRepository) FindByID(id uint64) (*models.DailyNote, error) {
	var note models.DailyNote
	if err := r.db.First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *GormDailyNoteRepository) FindByDate(date datatypes.Date) (*models.DailyNote, error) {
	var note models.DailyNote
	if err := r.db.Where("date = ?", date).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func inDateRange(query *gorm.DB, from, to *datatypes.Date) *gorm.DB {
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}
	return query
}

func (r *GormDailyNoteRepository) filtered(filter DailyNoteFilter) *gorm.DB {
	query := inDateRange(r.db.Model(&models.DailyNote{}), filter.StartDate, filter.EndDate)
	if filter.Content != nil {
		query = query.Where(database.ContainsFold("content", *filter.Content))
	}
	return query
}

// FindAll lists every note matching filter ordered by date
func (r *GormDailyNoteRepository) FindAll(filter DailyNoteFilter) ([]models.DailyNote, error) {
	notes := []models.DailyNote{}
	if err := r.filtered(filter).Order("date ASC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *GormDailyNoteRepository) List(filter DailyNoteFilter, page PageRequest) (*Page[models.DailyNote], error) {
	return findPage[models.DailyNote](r.filtered(filter), dailyNoteSortColumns, page)
}

func (r *GormDailyNoteRepository) Update(note *models.DailyNote) error {
	return r.db.Save(note).Error
}

func (r *GormDailyNoteRepository) Delete(id uint64) error {
	return r.db.Delete(&models.DailyNote{}, id).Error
}

func (r *GormDailyNoteRepository) ExistsByDate(date datatypes.Date) (bool, error) {
	count, err := r.Count(&date, &date)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts notes whose date falls in [from, to]; nil bounds are open
func (r *GormDailyNoteRepository) Count(from, to *datatypes.Date) (int64, error) {
	var count int64
	if err := inDateRange(r.db.Model(&models.DailyNote{}), from, to).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AverageContentLength returns the mean content length, or 0 without notes
func (r *GormDailyNoteRepository) AverageContentLength() (float64, error) {
	// MySQL's LENGTH counts bytes; the others count characters.
	length := "LENGTH"
	if r.db.Dialector.Name() == "mysql" {
		length = "CHAR_LENGTH"
	}

	var avg sql.NullFloat64
	row := r.db.Model(&models.DailyNote{}).Select("AVG(" + length + "(content))").Row()
	if err := row.Scan(&avg); err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}
