package repository

import (
	"gorm.io/gorm"

	"github.com/yukikurage/portal-api/internal/database"
	"github.com/yukikurage/portal-api/internal/models"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

func orderedEnvironments(db *gorm.DB) *gorm.DB {
	return db.Order("environments.id ASC")
}

func (r *GormProjectRepository) withEnvironments() *gorm.DB {
	return r.db.Preload("Environments", orderedEnvironments).Preload("Environments.Server")
}

func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.withEnvironments().First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) FindByName(name string) (*models.Project, error) {
	var project models.Project
	if err := r.withEnvironments().Where("name = ?", name).Order("id ASC").First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) FindAll() ([]models.Project, error) {
	projects := []models.Project{}
	if err := r.withEnvironments().Order("id ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *GormProjectRepository) List(filter ProjectFilter, page PageRequest) (*Page[models.Project], error) {
	query := r.db.Model(&models.Project{})
	if filter.Name != nil {
		query = query.Where(database.ContainsFold("name", *filter.Name))
	}
	return findPage[models.Project](query, projectSortColumns, page, "Environments", "Environments.Server")
}

// Update saves the project row only; environments are managed through their own repository.
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Omit("Environments").Save(project).Error
}

// Delete removes the project's environments, detaches its tasks and deletes the project in one transaction
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Environment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Task{}).Where("project_id = ?", id).Update("project_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

func (r *GormProjectRepository) Exists(id uint64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Project{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
