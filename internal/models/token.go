package models

import (
	"time"
)

// BlockchainStatusMinted is the only status a simulated mint produces.
const BlockchainStatusMinted = "minted"

// Token records a simulated mint of an artwork. The contract address and
// transaction hash are randomly generated placeholders; no blockchain is
// involved.
type Token struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	ArtworkID        uint      `json:"artwork_id" gorm:"uniqueIndex"`
	OwnerID          uint      `json:"owner_id" gorm:"index"`
	TokenURI         string    `json:"token_uri"`
	ContractAddress  string    `json:"contract_address"`
	TransactionHash  string    `json:"transaction_hash"`
	TokenMetadata    string    `json:"token_metadata" gorm:"type:text"` // JSON document
	BlockchainStatus string    `json:"blockchain_status"`
	CreatedAt        time.Time `json:"created_at"`
}

// TokenMetadata is the NFT-style metadata document stored with a token.
type TokenMetadata struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Attributes  []TokenAttribute `json:"attributes"`
}

// TokenAttribute is a single trait in token metadata.
type TokenAttribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}
