package out

import (
	"context"

	"focusguard/internal/modules/blocking/domain"
)

type SettingsStore interface {
	LoadBlocking(ctx context.Context) (bool, error)
	SaveBlocking(ctx context.Context, active bool) error
	LoadBlockList(ctx context.Context) ([]string, error)
	SaveBlockList(ctx context.Context, blockList []string) error
}

// RuleEngine owns the installed rule set. UpdateRules applies removals then
// additions atomically.
type RuleEngine interface {
	InstalledRules(ctx context.Context) ([]domain.Rule, error)
	UpdateRules(ctx context.Context, removeIDs []int, add []domain.Rule) error
}
