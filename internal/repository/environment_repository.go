package repository

import (
	"gorm.io/gorm"

	"github.com/yukikurage/portal-api/internal/database"
	"github.com/yukikurage/portal-api/internal/models"
)

// GormEnvironmentRepository is a GORM implementation of EnvironmentRepository
type GormEnvironmentRepository struct {
	db *gorm.DB
}

// NewEnvironmentRepository creates a new EnvironmentRepository
func NewEnvironmentRepository(db *gorm.DB) EnvironmentRepository {
	return &GormEnvironmentRepository{db: db}
}

func (r *GormEnvironmentRepository) Create(env *models.Environment) error {
	return r.db.Omit("Project", "Server").Create(env).Error
}

func (r *GormEnvironmentRepository) FindByID(id uint64) (*models.Environment, error) {
	var env models.Environment
	if err := r.db.Preload("Server").First(&env, id).Error; err != nil {
		return nil, err
	}
	return &env, nil
}

func (r *GormEnvironmentRepository) FindByType(envType string) (*models.Environment, error) {
	var env models.Environment
	if err := r.db.Preload("Server").Where("type = ?", envType).Order("id ASC").First(&env).Error; err != nil {
		return nil, err
	}
	return &env, nil
}

func (r *GormEnvironmentRepository) FindAll() ([]models.Environment, error) {
	envs := []models.Environment{}
	if err := r.db.Preload("Server").Order("id ASC").Find(&envs).Error; err != nil {
		return nil, err
	}
	return envs, nil
}

func (r *GormEnvironmentRepository) List(filter EnvironmentFilter, page PageRequest) (*Page[models.Environment], error) {
	query := r.db.Model(&models.Environment{})
	if filter.Type != nil {
		query = query.Where(database.ContainsFold("type", *filter.Type))
	}
	return findPage[models.Environment](query, environmentSortColumns, page, "Server")
}

func (r *GormEnvironmentRepository) Update(env *models.Environment) error {
	return r.db.Omit("Project", "Server").Save(env).Error
}

func (r *GormEnvironmentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Environment{}, id).Error
}
