package service

import (
	"market/database"
	"market/database/model"
	"market/logger"

	"gorm.io/gorm"
)

type ItemService struct{}

// GetItems returns all catalog items in storage order.
func (s *ItemService) GetItems() ([]model.Item, error) {
	db := database.GetDB()

	var items []model.Item
	err := db.Model(model.Item{}).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem returns a single item, or a nil item without error when it does
// not exist. Favorites resolution relies on this to skip orphan references.
func (s *ItemService) GetItem(id int) (*model.Item, error) {
	db := database.GetDB()

	item := &model.Item{}
	err := db.Model(model.Item{}).
		Where("id = ?", id).
		First(item).
		Error
	if database.IsNotFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return item, nil
}

// ResetAndSeed wipes the catalog and inserts the fixed seed items, leaving
// exactly those four rows regardless of prior state. Favorites pointing at
// the removed items become orphan references.
func (s *ItemService) ResetAndSeed() error {
	db := database.GetDB()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Item{}).Error; err != nil {
			return err
		}
		seed := database.CatalogSeed()
		return tx.Create(&seed).Error
	})
	if err != nil {
		return err
	}

	logger.Notice("catalog reset to seed items")
	return nil
}
