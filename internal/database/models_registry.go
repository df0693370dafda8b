package database

import "atelier/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
		&models.PostImage{},
		&models.PostTag{},
		&models.Comment{},
		&models.Like{},
		&models.CommentLike{},
		&models.Work{},
		&models.WorkImage{},
		&models.WorkTag{},
		&models.Review{},
	}
}
