package harvest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bahcem.in/hasat/models"
)

// Sequencer assigns the per-day display label of a harvest entry:
// "DD.MM.YYYY - N. Araba", N being the smallest positive integer not taken
// by another entry of the same tenant and calendar day. Field staff refer to
// entries as "the 2nd truck of the day", so numbers stay small and deleted
// numbers are reused (gap-filling), never max+1.
type Sequencer struct{}

func NewSequencer() *Sequencer {
	return &Sequencer{}
}

const nameSuffix = ". Araba"

func namePrefix(date time.Time) string {
	return date.UTC().Format("02.01.2006") + " - "
}

// FormatName builds the label for sequence number n on the given date.
func FormatName(date time.Time, n int) string {
	return fmt.Sprintf("%s%d%s", namePrefix(date), n, nameSuffix)
}

// dayWindow is the UTC calendar-day interval [start, end) containing date.
func dayWindow(date time.Time) (time.Time, time.Time) {
	u := date.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// usedNumbers extracts the sequence numbers already taken on a day. Only
// names that carry the day's exact prefix and suffix and parse to an integer
// >= 1 count; anything else (renamed, malformed, other-day leftovers) is
// ignored. Returns a sorted, de-duplicated slice.
func usedNumbers(date time.Time, names []string) []int {
	prefix := namePrefix(date)
	seen := map[int]bool{}
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, nameSuffix) {
			continue
		}
		mid := name[len(prefix) : len(name)-len(nameSuffix)]
		n, err := strconv.Atoi(mid)
		if err != nil || n < 1 {
			continue
		}
		seen[n] = true
	}
	used := make([]int, 0, len(seen))
	for n := range seen {
		used = append(used, n)
	}
	sort.Ints(used)
	return used
}

// nextNumber walks the sorted used set from 1 and stops at the first gap:
// used {1,2,4} yields 3, not 5.
func nextNumber(used []int) int {
	candidate := 1
	for _, n := range used {
		if n == candidate {
			candidate++
		} else if n > candidate {
			break
		}
	}
	return candidate
}

// NextName computes the label for a new or re-dated entry. exclude, when
// non-nil, drops that entry's own row from the scan so re-saving an entry on
// its existing date keeps its number instead of colliding with itself.
//
// Must be called inside the transaction that will persist the entry: it
// first takes a per-(tenant, day) advisory lock, so two concurrent creates
// for the same day serialize and cannot both claim the same number. The
// lock releases with the transaction.
func (s *Sequencer) NextName(tx *gorm.DB, tenantID uuid.UUID, date time.Time, exclude *uuid.UUID) (string, error) {
	start, end := dayWindow(date)

	lockKey := fmt.Sprintf("harvest_name:%s:%s", tenantID, start.Format("2006-01-02"))
	if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", lockKey).Error; err != nil {
		return "", fmt.Errorf("acquire name lock: %w", err)
	}

	q := tx.Model(&models.HarvestEntry{}).
		Where("tenant_id = ? AND date >= ? AND date < ?", tenantID, start, end)
	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}
	var names []string
	if err := q.Pluck("name", &names).Error; err != nil {
		return "", fmt.Errorf("scan same-day names: %w", err)
	}

	n := nextNumber(usedNumbers(date, names))
	return FormatName(date, n), nil
}
