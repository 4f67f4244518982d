package model

// User is a registered shop account. Password always holds a bcrypt hash,
// never the plaintext credential. Avatar is a path relative to the static
// root, e.g. "images/uploads/photo.jpg".
type User struct {
	Id       int     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string  `json:"username" gorm:"uniqueIndex;not null"`
	Email    *string `json:"email" gorm:"uniqueIndex"`
	Password string  `json:"-" gorm:"not null"`
	Avatar   string  `json:"avatar" gorm:"default:images/uploads/default.jpg"`
}

// Item is a catalog entry. Price is kept as text: the catalog is
// display-only and never does arithmetic on it.
type Item struct {
	Id    int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Image string `json:"image"`
}

// Favorite joins a user to a catalog item. The composite unique index backs
// the "at most one row per (user, item)" invariant at the schema level, so a
// concurrent double-add cannot slip past the application check.
type Favorite struct {
	Id     int `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId int `json:"userId" gorm:"not null;uniqueIndex:idx_favorites_user_item"`
	ItemId int `json:"itemId" gorm:"not null;uniqueIndex:idx_favorites_user_item"`
}
