package service

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"kennedy-digital-arts/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTokenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "tokens.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Artwork{}, &models.Token{}))
	return db
}

func submitArtwork(t *testing.T, artworks *ArtworkService, creatorID uint) *models.Artwork {
	t.Helper()
	artwork, err := artworks.CreateArtwork(&models.CreateArtworkRequest{
		Title:    "Eternal Flame",
		ImageURL: "https://example.com/flame.png",
	}, creatorID)
	require.NoError(t, err)
	return artwork
}

func TestMintArtworkOncePerArtwork(t *testing.T) {
	db := newTokenTestDB(t)
	artworks := NewArtworkService(db)
	svc := NewTokenService(db, artworks)
	artwork := submitArtwork(t, artworks, 3)

	token, err := svc.MintArtwork(artwork.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, models.BlockchainStatusMinted, token.BlockchainStatus)
	assert.Regexp(t, hexIdentifierPattern, token.ContractAddress)
	assert.Regexp(t, hexIdentifierPattern, token.TransactionHash)

	_, err = svc.MintArtwork(artwork.ID, 3)
	assert.ErrorIs(t, err, ErrArtworkAlreadyMinted)
}

func TestMintArtworkUnknownArtwork(t *testing.T) {
	db := newTokenTestDB(t)
	artworks := NewArtworkService(db)
	svc := NewTokenService(db, artworks)

	_, err := svc.MintArtwork(99, 3)
	assert.ErrorIs(t, err, ErrArtworkNotFound)
}

func TestMintArtworkSurfacesTokenQueryErrors(t *testing.T) {
	db := newTokenTestDB(t)
	artworks := NewArtworkService(db)
	svc := NewTokenService(db, artworks)
	artwork := submitArtwork(t, artworks, 3)

	// Fail reads of the tokens table only; the artwork lookup and any
	// insert stay healthy, so a swallowed query error would mint anyway.
	readsFail := false
	errStorage := errors.New("storage offline")
	require.NoError(t, db.Callback().Query().Before("gorm:query").Register("token_read_outage", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Model.(*models.Token); ok && readsFail {
			tx.AddError(errStorage)
		}
	}))

	readsFail = true
	_, err := svc.MintArtwork(artwork.ID, 3)
	require.ErrorIs(t, err, errStorage)

	readsFail = false
	_, err = svc.GetTokenByArtwork(artwork.ID)
	assert.ErrorIs(t, err, ErrTokenNotFound, "no token may be minted on a failed duplicate check")
}

var hexIdentifierPattern = regexp.MustCompile(`^0x[0-9a-f]{32}$`)

func TestMockHexIdentifierFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := mockHexIdentifier()
		assert.Regexp(t, hexIdentifierPattern, id)
		assert.False(t, seen[id], "identifiers should not repeat")
		seen[id] = true
	}
}

func TestMockTokenURI(t *testing.T) {
	assert.Equal(t, "ipfs://mock/42", mockTokenURI(42))
	assert.Equal(t, "ipfs://mock/1", mockTokenURI(1))
}

func TestBuildTokenMetadata(t *testing.T) {
	artwork := &models.Artwork{
		ID:          7,
		Title:       "Eternal Flame",
		Description: "A tribute in light",
		ImageURL:    "https://example.com/flame.png",
		CreatorID:   3,
	}

	raw, err := buildTokenMetadata(artwork)
	require.NoError(t, err)

	var metadata models.TokenMetadata
	require.NoError(t, json.Unmarshal([]byte(raw), &metadata))

	assert.Equal(t, "Eternal Flame", metadata.Name)
	assert.Equal(t, "A tribute in light", metadata.Description)
	assert.Equal(t, "https://example.com/flame.png", metadata.Image)
	require.Len(t, metadata.Attributes, 2)
	assert.Equal(t, "Collection", metadata.Attributes[0].TraitType)
	assert.Equal(t, "Kennedy Center Digital Arts", metadata.Attributes[0].Value)
	assert.Equal(t, "creator-3", metadata.Attributes[1].Value)
}
