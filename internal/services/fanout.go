package services

import "resolvenow_backend/internal/models"

// SuggestionRecipients computes who gets notified about a new
// suggestion on a complaint. The complaint owner, whatever their role,
// reaches the assigned agent (when there is one) and every admin; a
// non-owner agent reaches the admins; a non-owner admin reaches
// nobody. The author is never included and duplicates are collapsed.
func SuggestionRecipients(
	authorID string,
	authorRole models.UserRole,
	authorIsOwner bool,
	assignedToID *string,
	adminIDs []string,
) []string {
	var candidates []string

	switch {
	case authorIsOwner:
		if assignedToID != nil {
			candidates = append(candidates, *assignedToID)
		}
		candidates = append(candidates, adminIDs...)
	case authorRole == models.UserRoleAgent:
		candidates = append(candidates, adminIDs...)
	default:
		// Admin notes stay with the record.
	}

	seen := make(map[string]struct{}, len(candidates))
	recipients := make([]string, 0, len(candidates))
	for _, id := range candidates {
		if id == authorID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		recipients = append(recipients, id)
	}
	return recipients
}
