package service

import (
	"testing"

	"market/database"
	"market/database/model"

	"github.com/stretchr/testify/assert"
)

func TestAddFavoriteIdempotent(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}
	favoriteService := FavoriteService{}

	user, err := userService.Register("alice", "alice@x.com", "secret1", "secret1")
	assert.NoError(t, err)

	assert.NoError(t, favoriteService.AddFavorite(user.Id, 1))
	assert.NoError(t, favoriteService.AddFavorite(user.Id, 1))

	var count int64
	database.GetDB().Model(model.Favorite{}).
		Where("user_id = ? and item_id = ?", user.Id, 1).
		Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestFavoriteOrphanAfterReset(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}
	itemService := ItemService{}
	favoriteService := FavoriteService{}

	user, err := userService.Register("alice", "alice@x.com", "secret1", "secret1")
	assert.NoError(t, err)

	items, err := favoriteService.GetFavoriteItems(user.Id)
	assert.NoError(t, err)
	assert.Empty(t, items)

	assert.NoError(t, favoriteService.AddFavorite(user.Id, 1))

	items, err = favoriteService.GetFavoriteItems(user.Id)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Id)

	// The reseed replaces item 1 with a fresh row under a new id; alice's
	// favorite now points at nothing and resolves as absent.
	assert.NoError(t, itemService.ResetAndSeed())

	items, err = favoriteService.GetFavoriteItems(user.Id)
	assert.NoError(t, err)
	assert.Empty(t, items)

	favorites, err := favoriteService.GetFavorites(user.Id)
	assert.NoError(t, err)
	assert.Len(t, favorites, 1, "the orphan favorite row itself remains")
}

func TestAddFavoriteNonexistentItem(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}
	favoriteService := FavoriteService{}

	user, err := userService.Register("alice", "alice@x.com", "secret1", "secret1")
	assert.NoError(t, err)

	// The item id is not validated against the catalog.
	assert.NoError(t, favoriteService.AddFavorite(user.Id, 424242))

	items, err := favoriteService.GetFavoriteItems(user.Id)
	assert.NoError(t, err)
	assert.Empty(t, items)
}
