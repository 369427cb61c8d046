package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"kennedy-digital-arts/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTokenNotFound        = errors.New("token not found")
	ErrArtworkAlreadyMinted = errors.New("artwork already minted")
)

// TokenService simulates minting artworks as NFTs. Contract addresses,
// transaction hashes and token URIs are cosmetic placeholders; nothing
// touches a blockchain.
type TokenService struct {
	db       *gorm.DB
	artworks *ArtworkService
}

// NewTokenService creates a new token service.
func NewTokenService(db *gorm.DB, artworks *ArtworkService) *TokenService {
	return &TokenService{db: db, artworks: artworks}
}

// MintArtwork creates a Token row for an artwork. Each artwork can be
// minted once; the resulting token is immediately in minted status.
func (s *TokenService) MintArtwork(artworkID, ownerID uint) (*models.Token, error) {
	artwork, err := s.artworks.GetArtwork(artworkID)
	if err != nil {
		return nil, err
	}

	var existing models.Token
	result := s.db.Where("artwork_id = ?", artworkID).First(&existing)
	if result.Error == nil {
		return nil, ErrArtworkAlreadyMinted
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	metadata, err := buildTokenMetadata(artwork)
	if err != nil {
		return nil, err
	}

	token := models.Token{
		ArtworkID:        artwork.ID,
		OwnerID:          ownerID,
		TokenURI:         mockTokenURI(artwork.ID),
		ContractAddress:  mockHexIdentifier(),
		TransactionHash:  mockHexIdentifier(),
		TokenMetadata:    metadata,
		BlockchainStatus: models.BlockchainStatusMinted,
	}
	if err := s.db.Create(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// GetTokenByArtwork retrieves the token minted for an artwork, if any.
func (s *TokenService) GetTokenByArtwork(artworkID uint) (*models.Token, error) {
	var token models.Token
	result := s.db.Where("artwork_id = ?", artworkID).First(&token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, result.Error
	}
	return &token, nil
}

// ListTokensByOwner returns every token minted by a user.
func (s *TokenService) ListTokensByOwner(ownerID uint) ([]models.Token, error) {
	var tokens []models.Token
	if err := s.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

// mockHexIdentifier produces a 0x-prefixed 32-hex-character placeholder that
// looks like an address or transaction hash.
func mockHexIdentifier() string {
	return "0x" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

func mockTokenURI(artworkID uint) string {
	return fmt.Sprintf("ipfs://mock/%d", artworkID)
}

func buildTokenMetadata(artwork *models.Artwork) (string, error) {
	metadata := models.TokenMetadata{
		Name:        artwork.Title,
		Description: artwork.Description,
		Image:       artwork.ImageURL,
		Attributes: []models.TokenAttribute{
			{TraitType: "Collection", Value: "Kennedy Center Digital Arts"},
			{TraitType: "Minted By", Value: fmt.Sprintf("creator-%d", artwork.CreatorID)},
		},
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
