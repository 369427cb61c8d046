package secrets

import (
	"context"
	"sync"

	"kennedy-digital-arts/backend/internal/models"
	"kennedy-digital-arts/backend/pkg/logger"

	"gorm.io/gorm"
)

// DBManager serves secrets from the database's secrets table. The table is
// read once and held in memory; rotation requires a restart.
type DBManager struct {
	secrets map[string]string
	mu      sync.RWMutex
	log     *logger.Logger
}

// NewDBManager loads every row of the secrets table into memory.
func NewDBManager(db *gorm.DB, log *logger.Logger) (*DBManager, error) {
	var rows []models.Secret
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}

	secrets := make(map[string]string, len(rows))
	for _, row := range rows {
		secrets[row.KeyName] = row.KeyValue
	}

	log.Info("loaded secrets from database", "count", len(secrets))
	return &DBManager{secrets: secrets, log: log}, nil
}

// GetSecret retrieves a secret by key.
func (m *DBManager) GetSecret(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.secrets[key]
	if !ok || value == "" {
		return "", ErrSecretNotFound
	}
	return value, nil
}

// GetSecretWithDefault retrieves a secret with a default value if not found.
func (m *DBManager) GetSecretWithDefault(ctx context.Context, key, defaultValue string) string {
	value, err := m.GetSecret(ctx, key)
	if err != nil {
		return defaultValue
	}
	return value
}

// ChainManager consults managers in order and returns the first hit.
type ChainManager struct {
	managers []Manager
}

// NewChainManager builds a manager that falls through the given sources.
func NewChainManager(managers ...Manager) *ChainManager {
	return &ChainManager{managers: managers}
}

// GetSecret retrieves a secret from the first manager that has it.
func (c *ChainManager) GetSecret(ctx context.Context, key string) (string, error) {
	for _, m := range c.managers {
		if m == nil {
			continue
		}
		if value, err := m.GetSecret(ctx, key); err == nil && value != "" {
			return value, nil
		}
	}
	return "", ErrSecretNotFound
}

// GetSecretWithDefault retrieves a secret with a default value if not found.
func (c *ChainManager) GetSecretWithDefault(ctx context.Context, key, defaultValue string) string {
	if value, err := c.GetSecret(ctx, key); err == nil {
		return value
	}
	return defaultValue
}
