package service

import (
	"errors"

	"kennedy-digital-arts/backend/internal/models"

	"gorm.io/gorm"
)

var ErrArtworkNotFound = errors.New("artwork not found")

// ArtworkService handles gallery submissions.
type ArtworkService struct {
	db *gorm.DB
}

// NewArtworkService creates a new artwork service.
func NewArtworkService(db *gorm.DB) *ArtworkService {
	return &ArtworkService{db: db}
}

// CreateArtwork stores a new submission for the given creator.
func (s *ArtworkService) CreateArtwork(req *models.CreateArtworkRequest, creatorID uint) (*models.Artwork, error) {
	artwork := models.Artwork{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CreatorID:   creatorID,
	}
	if err := s.db.Create(&artwork).Error; err != nil {
		return nil, err
	}
	return &artwork, nil
}

// GetArtwork retrieves a single artwork by ID.
func (s *ArtworkService) GetArtwork(id uint) (*models.Artwork, error) {
	var artwork models.Artwork
	result := s.db.First(&artwork, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrArtworkNotFound
		}
		return nil, result.Error
	}
	return &artwork, nil
}

// ListArtworks returns all artworks, newest first.
func (s *ArtworkService) ListArtworks() ([]models.Artwork, error) {
	var artworks []models.Artwork
	if err := s.db.Order("created_at DESC").Find(&artworks).Error; err != nil {
		return nil, err
	}
	return artworks, nil
}

// DeleteArtwork removes an artwork owned by the given user.
func (s *ArtworkService) DeleteArtwork(id, ownerID uint) error {
	result := s.db.Where("id = ? AND creator_id = ?", id, ownerID).Delete(&models.Artwork{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrArtworkNotFound
	}
	return nil
}
