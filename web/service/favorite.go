package service

import (
	"market/database"
	"market/database/model"
	"market/logger"
)

type FavoriteService struct {
	itemService ItemService
}

// AddFavorite records that a user favors an item, once. Adding the same
// pair again is a no-op. The item id is not required to exist: the catalog
// may be reseeded underneath standing favorites.
func (s *FavoriteService) AddFavorite(userId int, itemId int) error {
	db := database.GetDB()

	var count int64
	err := db.Model(model.Favorite{}).
		Where("user_id = ? and item_id = ?", userId, itemId).
		Count(&count).
		Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	favorite := &model.Favorite{UserId: userId, ItemId: itemId}
	if err := db.Create(favorite).Error; err != nil {
		// A concurrent add may beat the existence check. The schema's
		// unique index turns that race into an error equivalent to the
		// row already being there.
		if isUniqueViolation(err) {
			logger.Debugf("favorite (%d, %d) already exists", userId, itemId)
			return nil
		}
		return err
	}
	return nil
}

// GetFavorites returns the raw favorite rows of a user.
func (s *FavoriteService) GetFavorites(userId int) ([]model.Favorite, error) {
	db := database.GetDB()

	var favorites []model.Favorite
	err := db.Model(model.Favorite{}).
		Where("user_id = ?", userId).
		Find(&favorites).
		Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

// GetFavoriteItems resolves a user's favorites to catalog items. Orphan
// references whose item was removed by a reseed are resolved as absent and
// filtered out.
func (s *FavoriteService) GetFavoriteItems(userId int) ([]model.Item, error) {
	favorites, err := s.GetFavorites(userId)
	if err != nil {
		return nil, err
	}

	items := make([]model.Item, 0, len(favorites))
	for _, favorite := range favorites {
		item, err := s.itemService.GetItem(favorite.ItemId)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}
		items = append(items, *item)
	}
	return items, nil
}
