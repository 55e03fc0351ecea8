package repository

import (
	"gorm.io/gorm"

	"github.com/yukikurage/portal-api/internal/database"
	"github.com/yukikurage/portal-api/internal/models"
)

// GormServerRepository is a GORM implementation of ServerRepository
type GormServerRepository struct {
	db *gorm.DB
}

// NewServerRepository creates a new ServerRepository
func NewServerRepository(db *gorm.DB) ServerRepository {
	return &GormServerRepository{db: db}
}

func (r *GormServerRepository) Create(server *models.Server) error {
	return r.db.Create(server).Error
}

func (r *GormServerRepository) FindByID(id uint64) (*models.Server, error) {
	var server models.Server
	if err := r.db.First(&server, id).Error; err != nil {
		return nil, err
	}
	return &server, nil
}

func (r *GormServerRepository) FindByName(name string) (*models.Server, error) {
	var server models.Server
	if err := r.db.Where("name = ?", name).Order("id ASC").First(&server).Error; err != nil {
		return nil, err
	}
	return &server, nil
}

func (r *GormServerRepository) FindAll() ([]models.Server, error) {
	servers := []models.Server{}
	if err := r.db.Order("id ASC").Find(&servers).Error; err != nil {
		return nil, err
	}
	return servers, nil
}

func (r *GormServerRepository) List(filter ServerFilter, page PageRequest) (*Page[models.Server], error) {
	query := r.db.Model(&models.Server{})
	if filter.Name != nil {
		query = query.Where(database.ContainsFold("name", *filter.Name))
	}
	return findPage[models.Server](query, serverSortColumns, page)
}

func (r *GormServerRepository) Update(server *models.Server) error {
	return r.db.Save(server).Error
}

// Delete deletes a server and clears the references environments hold to it
func (r *GormServerRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Environment{}).Where("server_id = ?", id).Update("server_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Server{}, id).Error
	})
}

func (r *GormServerRepository) Exists(id uint64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Server{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
