package harvest

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bahcem.in/hasat/models"
)

// TraderDirectory is the tenant-scoped trader name registry. Lookups are
// exact and case-sensitive on the trimmed name; autocomplete search is
// case-insensitive substring.
type TraderDirectory struct {
	db *gorm.DB
}

func NewTraderDirectory(db *gorm.DB) *TraderDirectory {
	return &TraderDirectory{db: db}
}

// FindOrCreate resolves a trader by its trimmed name, creating the record on
// first sight. Idempotent by the (tenant, name) natural key: calling it twice
// with " Acme " and "Acme" returns the same trader.
func (d *TraderDirectory) FindOrCreate(tenantID uuid.UUID, rawName string) (*models.Trader, error) {
	return d.findOrCreate(d.db, tenantID, rawName)
}

// normalizeTraderName derives the natural key from a raw name. Whitespace
// variants like " Acme " and "Acme" normalize to the same key.
func normalizeTraderName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", invalidArgument("trader name must not be empty")
	}
	return name, nil
}

func (d *TraderDirectory) findOrCreate(tx *gorm.DB, tenantID uuid.UUID, rawName string) (*models.Trader, error) {
	name, err := normalizeTraderName(rawName)
	if err != nil {
		return nil, err
	}

	var trader models.Trader
	err = tx.Where("tenant_id = ? AND name = ?", tenantID, name).First(&trader).Error
	if err == nil {
		return &trader, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	trader = models.Trader{TenantID: tenantID, Name: name}
	if err := tx.Create(&trader).Error; err != nil {
		// Lost a race against a concurrent create of the same name: the
		// unique (tenant_id, name) index rejected ours, so the winner's row
		// is the answer.
		var existing models.Trader
		if ferr := tx.Where("tenant_id = ? AND name = ?", tenantID, name).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &trader, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so a query of "%" matches a
// literal percent sign instead of every trader.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Search returns up to 10 traders whose name contains query
// case-insensitively, alphabetical. An empty query returns nothing; this is
// an autocomplete path, not a browse-all path.
func (d *TraderDirectory) Search(tenantID uuid.UUID, query string) ([]models.Trader, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Trader{}, nil
	}
	var traders []models.Trader
	err := d.db.
		Where("tenant_id = ? AND name ILIKE ?", tenantID, "%"+escapeLike(query)+"%").
		Order("name ASC").
		Limit(10).
		Find(&traders).Error
	return traders, err
}

// ListAll returns up to 200 traders alphabetically, for filter dropdowns.
func (d *TraderDirectory) ListAll(tenantID uuid.UUID) ([]models.Trader, error) {
	var traders []models.Trader
	err := d.db.
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Limit(200).
		Find(&traders).Error
	return traders, err
}
