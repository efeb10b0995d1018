package service

import (
	"context"
	"fmt"

	"focusguard/internal/modules/blocking/domain"
	blockingout "focusguard/internal/modules/blocking/port/out"
)

type BlockingService struct {
	engine blockingout.RuleEngine
}

func NewBlockingService(engine blockingout.RuleEngine) *BlockingService {
	return &BlockingService{engine: engine}
}

// Reconcile replaces every installed rule with the compiled block list when
// focus is active, or with nothing when it is not. Installed IDs are read
// from the engine on every call and removed in the same update that adds.
func (s *BlockingService) Reconcile(ctx context.Context, blockList []string, focusActive bool) (int, int, error) {
	installed, err := s.engine.InstalledRules(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("read installed rules: %w", err)
	}
	removeIDs := make([]int, 0, len(installed))
	for _, rule := range installed {
		removeIDs = append(removeIDs, rule.ID)
	}

	var add []domain.Rule
	if focusActive {
		add = domain.Compile(blockList)
	}
	if err := s.engine.UpdateRules(ctx, removeIDs, add); err != nil {
		return 0, 0, fmt.Errorf("update rules: %w", err)
	}
	return len(removeIDs), len(add), nil
}

func (s *BlockingService) Installed(ctx context.Context) ([]domain.Rule, error) {
	return s.engine.InstalledRules(ctx)
}
