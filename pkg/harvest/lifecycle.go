package harvest

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bahcem.in/hasat/models"
)

// Notifier receives submission events. Implementations must swallow their
// own failures; a lost notification never fails a submission.
type Notifier interface {
	HarvestSubmitted(entry *models.HarvestEntry, metrics Metrics)
}

// Lifecycle drives a harvest entry through its two-state machine:
// draft -> submitted (terminal), draft -> deleted. A submitted entry is
// immutable through this API. Every operation runs in one transaction, so
// the caller sees either the full effect or none.
type Lifecycle struct {
	db       *gorm.DB
	traders  *TraderDirectory
	seq      *Sequencer
	notifier Notifier
	logger   *log.Logger
}

func NewLifecycle(db *gorm.DB, traders *TraderDirectory, seq *Sequencer, notifier Notifier, logger *log.Logger) *Lifecycle {
	if logger == nil {
		logger = log.Default()
	}
	return &Lifecycle{db: db, traders: traders, seq: seq, notifier: notifier, logger: logger}
}

const dateLayout = "2006-01-02"

// CreateInput carries the fields of a new draft. Omitted quantities stay
// null ("not provided"); only PricePerKg defaults to zero.
type CreateInput struct {
	GardenID   uuid.UUID `json:"gardenId"`
	Date       string    `json:"date"` // "2006-01-02"
	TraderName string    `json:"traderName"`

	PricePerKg      *decimal.Decimal `json:"pricePerKg,omitempty"`
	Grade1Kg        *decimal.Decimal `json:"grade1Kg,omitempty"`
	Grade2Kg        *decimal.Decimal `json:"grade2Kg,omitempty"`
	ThirdLabel      *string          `json:"thirdLabel,omitempty"`
	ThirdKg         *decimal.Decimal `json:"thirdKg,omitempty"`
	ThirdPricePerKg *decimal.Decimal `json:"thirdPricePerKg,omitempty"`

	IndependentScaleFullKg  *decimal.Decimal `json:"independentScaleFullKg,omitempty"`
	IndependentScaleEmptyKg *decimal.Decimal `json:"independentScaleEmptyKg,omitempty"`
	TraderScaleFullKg       *decimal.Decimal `json:"traderScaleFullKg,omitempty"`
	TraderScaleEmptyKg      *decimal.Decimal `json:"traderScaleEmptyKg,omitempty"`

	ClosureNote *string `json:"closureNote,omitempty"`
}

// EntryPatch is a partial update of a draft. Optional tracks JSON presence:
// an omitted field is left unchanged, an explicit null clears it.
type EntryPatch struct {
	Date       models.Optional[string]    `json:"date"`
	GardenID   models.Optional[uuid.UUID] `json:"gardenId"`
	TraderName models.Optional[string]    `json:"traderName"`

	PricePerKg models.Optional[decimal.Decimal] `json:"pricePerKg"`

	Grade1Kg        models.Optional[*decimal.Decimal] `json:"grade1Kg"`
	Grade2Kg        models.Optional[*decimal.Decimal] `json:"grade2Kg"`
	ThirdLabel      models.Optional[*string]          `json:"thirdLabel"`
	ThirdKg         models.Optional[*decimal.Decimal] `json:"thirdKg"`
	ThirdPricePerKg models.Optional[*decimal.Decimal] `json:"thirdPricePerKg"`

	IndependentScaleFullKg  models.Optional[*decimal.Decimal] `json:"independentScaleFullKg"`
	IndependentScaleEmptyKg models.Optional[*decimal.Decimal] `json:"independentScaleEmptyKg"`
	TraderScaleFullKg       models.Optional[*decimal.Decimal] `json:"traderScaleFullKg"`
	TraderScaleEmptyKg      models.Optional[*decimal.Decimal] `json:"traderScaleEmptyKg"`

	ClosureNote models.Optional[*string] `json:"closureNote"`
}

func checkNonNegative(field string, d *decimal.Decimal) error {
	if d != nil && d.IsNegative() {
		return invalidArgument(field + " must not be negative")
	}
	return nil
}

func (in *CreateInput) validate() (time.Time, error) {
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return time.Time{}, invalidArgument("date must be formatted YYYY-MM-DD")
	}
	for field, d := range map[string]*decimal.Decimal{
		"pricePerKg":              in.PricePerKg,
		"grade1Kg":                in.Grade1Kg,
		"grade2Kg":                in.Grade2Kg,
		"thirdKg":                 in.ThirdKg,
		"thirdPricePerKg":         in.ThirdPricePerKg,
		"independentScaleFullKg":  in.IndependentScaleFullKg,
		"independentScaleEmptyKg": in.IndependentScaleEmptyKg,
		"traderScaleFullKg":       in.TraderScaleFullKg,
		"traderScaleEmptyKg":      in.TraderScaleEmptyKg,
	} {
		if err := checkNonNegative(field, d); err != nil {
			return time.Time{}, err
		}
	}
	return models.NormalizeHarvestDate(date), nil
}

func (s *Lifecycle) gardenOwnedBy(tx *gorm.DB, tenantID, gardenID uuid.UUID) error {
	var garden models.Garden
	err := tx.Where("id = ? AND tenant_id = ?", gardenID, tenantID).First(&garden).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("garden")
	}
	return err
}

// Create persists a new draft: garden ownership check, trader resolution,
// name assignment, all inside one transaction.
func (s *Lifecycle) Create(tenantID uuid.UUID, in CreateInput) (*models.HarvestEntry, error) {
	date, err := in.validate()
	if err != nil {
		return nil, err
	}
	if in.GardenID == uuid.Nil {
		return nil, invalidArgument("gardenId is required")
	}

	price := decimal.Zero
	if in.PricePerKg != nil {
		price = *in.PricePerKg
	}

	var entry models.HarvestEntry
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.gardenOwnedBy(tx, tenantID, in.GardenID); err != nil {
			return err
		}
		trader, err := s.traders.findOrCreate(tx, tenantID, in.TraderName)
		if err != nil {
			return err
		}
		name, err := s.seq.NextName(tx, tenantID, date, nil)
		if err != nil {
			return err
		}

		entry = models.HarvestEntry{
			TenantID:   tenantID,
			GardenID:   in.GardenID,
			TraderID:   trader.ID,
			TraderName: trader.Name,
			Date:       date,
			Name:       name,
			Status:     models.HarvestDraft,

			PricePerKg:      price,
			Grade1Kg:        in.Grade1Kg,
			Grade2Kg:        in.Grade2Kg,
			ThirdLabel:      in.ThirdLabel,
			ThirdKg:         in.ThirdKg,
			ThirdPricePerKg: in.ThirdPricePerKg,

			IndependentScaleFullKg:  in.IndependentScaleFullKg,
			IndependentScaleEmptyKg: in.IndependentScaleEmptyKg,
			TraderScaleFullKg:       in.TraderScaleFullKg,
			TraderScaleEmptyKg:      in.TraderScaleEmptyKg,

			ClosureNote: in.ClosureNote,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	s.logger.Printf("[HARVEST] created draft %s (%s) tenant=%s", entry.Name, entry.ID, tenantID)
	return &entry, nil
}

// ensureDraft is the terminal-state gate: a submitted entry refuses every
// mutation in this API, regardless of caller.
func ensureDraft(e *models.HarvestEntry) error {
	if e.Status != models.HarvestDraft {
		return invalidState("harvest entry is " + string(e.Status))
	}
	return nil
}

// lockDraft loads an entry FOR UPDATE and rejects anything not owned by the
// tenant or no longer a draft.
func (s *Lifecycle) lockDraft(tx *gorm.DB, tenantID, id uuid.UUID) (*models.HarvestEntry, error) {
	var entry models.HarvestEntry
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("harvest entry")
	}
	if err != nil {
		return nil, err
	}
	if err := ensureDraft(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update applies a partial patch to a draft. If the date changes the name is
// recomputed with the entry excluded from the scan, so re-saving the same
// date keeps the entry's own number.
func (s *Lifecycle) Update(tenantID, id uuid.UUID, patch EntryPatch) (*models.HarvestEntry, error) {
	for field, opt := range map[string]models.Optional[*decimal.Decimal]{
		"grade1Kg":                patch.Grade1Kg,
		"grade2Kg":                patch.Grade2Kg,
		"thirdKg":                 patch.ThirdKg,
		"thirdPricePerKg":         patch.ThirdPricePerKg,
		"independentScaleFullKg":  patch.IndependentScaleFullKg,
		"independentScaleEmptyKg": patch.IndependentScaleEmptyKg,
		"traderScaleFullKg":       patch.TraderScaleFullKg,
		"traderScaleEmptyKg":      patch.TraderScaleEmptyKg,
	} {
		if opt.Set {
			if err := checkNonNegative(field, opt.Value); err != nil {
				return nil, err
			}
		}
	}
	if patch.PricePerKg.Set && patch.PricePerKg.Value.IsNegative() {
		return nil, invalidArgument("pricePerKg must not be negative")
	}

	var entry *models.HarvestEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = s.lockDraft(tx, tenantID, id)
		if err != nil {
			return err
		}

		if patch.GardenID.Set {
			if patch.GardenID.Value == uuid.Nil {
				return invalidArgument("gardenId must not be empty")
			}
			if err := s.gardenOwnedBy(tx, tenantID, patch.GardenID.Value); err != nil {
				return err
			}
			entry.GardenID = patch.GardenID.Value
		}

		if patch.TraderName.Set && strings.TrimSpace(patch.TraderName.Value) != "" {
			trader, err := s.traders.findOrCreate(tx, tenantID, patch.TraderName.Value)
			if err != nil {
				return err
			}
			entry.TraderID = trader.ID
			entry.TraderName = trader.Name
		}

		if patch.Date.Set {
			parsed, err := time.Parse(dateLayout, patch.Date.Value)
			if err != nil {
				return invalidArgument("date must be formatted YYYY-MM-DD")
			}
			date := models.NormalizeHarvestDate(parsed)
			name, err := s.seq.NextName(tx, tenantID, date, &entry.ID)
			if err != nil {
				return err
			}
			entry.Date = date
			entry.Name = name
		}

		if patch.PricePerKg.Set {
			entry.PricePerKg = patch.PricePerKg.Value
		}
		applyOpt(&entry.Grade1Kg, patch.Grade1Kg)
		applyOpt(&entry.Grade2Kg, patch.Grade2Kg)
		applyOpt(&entry.ThirdLabel, patch.ThirdLabel)
		applyOpt(&entry.ThirdKg, patch.ThirdKg)
		applyOpt(&entry.ThirdPricePerKg, patch.ThirdPricePerKg)
		applyOpt(&entry.IndependentScaleFullKg, patch.IndependentScaleFullKg)
		applyOpt(&entry.IndependentScaleEmptyKg, patch.IndependentScaleEmptyKg)
		applyOpt(&entry.TraderScaleFullKg, patch.TraderScaleFullKg)
		applyOpt(&entry.TraderScaleEmptyKg, patch.TraderScaleEmptyKg)
		applyOpt(&entry.ClosureNote, patch.ClosureNote)

		return tx.Save(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func applyOpt[T any](dst *T, opt models.Optional[T]) {
	if opt.Set {
		*dst = opt.Value
	}
}

// submitViolations runs the full validation gate. Every rule executes; the
// result is the complete list of failures, never just the first.
func submitViolations(e *models.HarvestEntry, traderSlipPhotos int64) []Violation {
	var out []Violation
	fail := func(field, msg string) {
		out = append(out, Violation{Field: field, Message: msg})
	}

	if e.Date.IsZero() {
		fail("date", "date is required")
	}
	if e.GardenID == uuid.Nil {
		fail("gardenId", "garden is required")
	}
	if strings.TrimSpace(e.TraderName) == "" {
		fail("traderName", "trader name is required")
	}
	if !e.PricePerKg.IsPositive() {
		fail("pricePerKg", "price per kg must be greater than zero")
	}
	// Explicit zero is acceptable for grades; only absence fails.
	if e.Grade1Kg == nil {
		fail("grade1Kg", "grade 1 weight is required")
	}
	if e.Grade2Kg == nil {
		fail("grade2Kg", "grade 2 weight is required")
	}
	if traderSlipPhotos < 1 {
		fail("photos", "at least one trader slip photo is required")
	}
	if e.ThirdKg != nil && e.ThirdKg.IsPositive() {
		if e.ThirdPricePerKg == nil || e.ThirdPricePerKg.IsNegative() {
			fail("thirdPricePerKg", "third grade price is required when third grade weight is set")
		}
	}
	return out
}

// Submit finalizes a draft: runs the validation gate and, on success, flips
// it to submitted irreversibly with SubmittedAt set exactly once. The
// notifier fires after commit.
func (s *Lifecycle) Submit(tenantID, id uuid.UUID) (*models.HarvestEntry, error) {
	var entry *models.HarvestEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = s.lockDraft(tx, tenantID, id)
		if err != nil {
			return err
		}

		var slips int64
		if err := tx.Model(&models.HarvestPhoto{}).
			Where("harvest_id = ? AND category = ?", entry.ID, models.PhotoTraderSlip).
			Count(&slips).Error; err != nil {
			return err
		}

		if violations := submitViolations(entry, slips); len(violations) > 0 {
			return &ValidationError{Violations: violations}
		}

		now := time.Now().UTC()
		entry.Status = models.HarvestSubmitted
		entry.SubmittedAt = &now
		return tx.Save(entry).Error
	})
	if err != nil {
		return nil, err
	}

	metrics := ComputeMetrics(entry)
	s.logger.Printf("[HARVEST] submitted %s (%s) net=%s gapHigh=%v", entry.Name, entry.ID, metrics.NetRevenue, metrics.ScaleGapHigh)
	if s.notifier != nil {
		s.notifier.HarvestSubmitted(entry, metrics)
	}
	return entry, nil
}

// Delete removes a draft and its photo records. Submitted entries are
// terminal and cannot be deleted here.
func (s *Lifecycle) Delete(tenantID, id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		entry, err := s.lockDraft(tx, tenantID, id)
		if err != nil {
			return err
		}
		if err := tx.Where("harvest_id = ?", entry.ID).Delete(&models.HarvestPhoto{}).Error; err != nil {
			return err
		}
		return tx.Delete(entry).Error
	})
}

// AttachPhoto records an uploaded photo against a draft. The binary is
// already in external storage; only the metadata row is written here.
func (s *Lifecycle) AttachPhoto(tenantID, harvestID uuid.UUID, category models.PhotoCategory, url string) (*models.HarvestPhoto, error) {
	if category != models.PhotoTraderSlip && category != models.PhotoGeneral {
		return nil, invalidArgument("unknown photo category")
	}
	var photo models.HarvestPhoto
	err := s.db.Transaction(func(tx *gorm.DB) error {
		entry, err := s.lockDraft(tx, tenantID, harvestID)
		if err != nil {
			return err
		}
		photo = models.HarvestPhoto{HarvestID: entry.ID, Category: category, URL: url}
		return tx.Create(&photo).Error
	})
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// DeletePhoto removes a photo from a draft. The photo must belong to the
// given entry; the entry must still be a draft.
func (s *Lifecycle) DeletePhoto(tenantID, harvestID, photoID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		entry, err := s.lockDraft(tx, tenantID, harvestID)
		if err != nil {
			return err
		}
		res := tx.Where("id = ? AND harvest_id = ?", photoID, entry.ID).Delete(&models.HarvestPhoto{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("photo")
		}
		return nil
	})
}

// ListFilter narrows List. Nil fields are ignored.
type ListFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Status   *models.HarvestStatus
	GardenID *uuid.UUID
}

// List returns up to 50 entries newest first.
func (s *Lifecycle) List(tenantID uuid.UUID, filter ListFilter) ([]models.HarvestEntry, error) {
	q := s.db.Where("tenant_id = ?", tenantID)
	if filter.DateFrom != nil {
		q = q.Where("date >= ?", models.NormalizeHarvestDate(*filter.DateFrom).Add(-12*time.Hour))
	}
	if filter.DateTo != nil {
		q = q.Where("date < ?", models.NormalizeHarvestDate(*filter.DateTo).Add(12*time.Hour))
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.GardenID != nil {
		q = q.Where("garden_id = ?", *filter.GardenID)
	}

	var entries []models.HarvestEntry
	err := q.Preload("Photos").
		Order("date DESC, created_at DESC").
		Limit(50).
		Find(&entries).Error
	return entries, err
}

// Get loads one entry with its photos, tenant-scoped.
func (s *Lifecycle) Get(tenantID, id uuid.UUID) (*models.HarvestEntry, error) {
	var entry models.HarvestEntry
	err := s.db.Preload("Photos").Preload("Garden").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("harvest entry")
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
