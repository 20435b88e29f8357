package services

import (
	"errors"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

type BookmarkService struct {
	db *gorm.DB
}

func NewBookmarkService(db *gorm.DB) *BookmarkService {
	return &BookmarkService{db: db}
}

type BookmarkRequest struct {
	RecipeID int64   `json:"recipe_id"`
	Title    string  `json:"title"`
	Image    string  `json:"image"`
	Calories float64 `json:"calories"`
}

// Save records a bookmark for a signed-in user or, when userID is nil, under
// the device key only (the signed-out fallback). Saving an already-bookmarked
// recipe is a no-op returning the existing row.
func (s *BookmarkService) Save(userID *uint, deviceKey string, req BookmarkRequest) (*models.Bookmark, error) {
	q := s.db.Model(&models.Bookmark{})
	if userID != nil {
		q = q.Where("user_id = ? AND recipe_id = ?", *userID, req.RecipeID)
	} else {
		q = q.Where("user_id IS NULL AND device_key = ? AND recipe_id = ?", deviceKey, req.RecipeID)
	}

	var existing models.Bookmark
	err := q.First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	bm := models.Bookmark{
		UserID:    userID,
		DeviceKey: deviceKey,
		RecipeID:  req.RecipeID,
		Title:     req.Title,
		Image:     req.Image,
		Calories:  req.Calories,
		SavedAt:   time.Now(),
	}
	if userID != nil {
		bm.DeviceKey = ""
	}
	if err := s.db.Create(&bm).Error; err != nil {
		return nil, err
	}
	return &bm, nil
}

func (s *BookmarkService) List(userID uint) ([]models.Bookmark, error) {
	var rows []models.Bookmark
	err := s.db.
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&rows).Error
	return rows, err
}

func (s *BookmarkService) ListGuest(deviceKey string) ([]models.Bookmark, error) {
	var rows []models.Bookmark
	err := s.db.
		Where("user_id IS NULL AND device_key = ?", deviceKey).
		Order("saved_at DESC").
		Find(&rows).Error
	return rows, err
}

func (s *BookmarkService) Remove(userID uint, recipeID int64) error {
	return s.db.
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Bookmark{}).Error
}

// Reconcile attaches a device's guest bookmarks to a freshly signed-in user.
// Bookmarks the account already has for the same recipe win; the guest copy is
// discarded rather than overwriting them.
func (s *BookmarkService) Reconcile(deviceKey string, userID uint) (adopted int, err error) {
	var guest []models.Bookmark
	if err = s.db.Where("user_id IS NULL AND device_key = ?", deviceKey).Find(&guest).Error; err != nil {
		return 0, err
	}

	for i := range guest {
		var dup models.Bookmark
		derr := s.db.Where("user_id = ? AND recipe_id = ?", userID, guest[i].RecipeID).First(&dup).Error
		if derr == nil {
			_ = s.db.Delete(&guest[i]).Error
			continue
		}
		if !errors.Is(derr, gorm.ErrRecordNotFound) {
			return adopted, derr
		}
		guest[i].UserID = &userID
		guest[i].DeviceKey = ""
		if err = s.db.Save(&guest[i]).Error; err != nil {
			return adopted, err
		}
		adopted++
	}
	return adopted, nil
}
