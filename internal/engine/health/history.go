package health

import "assessment-workers/internal/models"

// AppendHistory returns a new newest-first history with entry at the front,
// truncated to limit entries. The oldest entries are evicted first. A limit
// <= 0 uses DefaultHistoryLimit. The input slice is not modified.
func AppendHistory(history []models.HealthHistoryEntry, entry models.HealthHistoryEntry, limit int) []models.HealthHistoryEntry {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	n := len(history) + 1
	if n > limit {
		n = limit
	}

	out := make([]models.HealthHistoryEntry, 0, n)
	out = append(out, entry)
	for _, h := range history {
		if len(out) == n {
			break
		}
		out = append(out, h)
	}
	return out
}
