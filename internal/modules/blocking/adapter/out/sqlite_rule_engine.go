package out

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"focusguard/internal/modules/blocking/domain"
	blockingout "focusguard/internal/modules/blocking/port/out"
)

// SQLiteRuleEngine keeps the installed redirect rules in the blocking_rules
// table, which is what the blocker page and matchers read.
type SQLiteRuleEngine struct {
	db *sql.DB
}

func NewSQLiteRuleEngine(db *sql.DB) (blockingout.RuleEngine, error) {
	engine := &SQLiteRuleEngine{db: db}
	if err := engine.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return engine, nil
}

func (e *SQLiteRuleEngine) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS blocking_rules (
  id INTEGER PRIMARY KEY,
  root_domain TEXT NOT NULL,
  scope TEXT NOT NULL,
  priority INTEGER NOT NULL,
  url_filter TEXT NOT NULL,
  resource_types TEXT NOT NULL,
  redirect_path TEXT NOT NULL
);
`
	if _, err := e.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create blocking_rules table: %w", err)
	}
	return nil
}

func (e *SQLiteRuleEngine) InstalledRules(ctx context.Context) ([]domain.Rule, error) {
	rows, err := e.db.QueryContext(ctx, `SELECT id, root_domain, scope, priority, url_filter, resource_types, redirect_path FROM blocking_rules ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Rule, 0)
	for rows.Next() {
		var (
			rule      domain.Rule
			scope     string
			resources string
		)
		if err := rows.Scan(&rule.ID, &rule.RootDomain, &scope, &rule.Priority, &rule.URLFilter, &resources, &rule.RedirectPath); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rule.Scope = domain.Scope(scope)
		rule.ResourceTypes = strings.Split(resources, ",")
		out = append(out, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rules: %w", err)
	}
	return out, nil
}

// UpdateRules rejects the whole update if any added rule is malformed or
// collides with a rule that stays installed.
func (e *SQLiteRuleEngine) UpdateRules(ctx context.Context, removeIDs []int, add []domain.Rule) error {
	for _, rule := range add {
		if err := rule.Validate(); err != nil {
			return err
		}
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rules tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, id := range removeIDs {
		if _, err := tx.ExecContext(ctx, `DELETE FROM blocking_rules WHERE id = ?`, id); err != nil {
			return fmt.Errorf("remove rule %d: %w", id, err)
		}
	}
	const insert = `
INSERT INTO blocking_rules (id, root_domain, scope, priority, url_filter, resource_types, redirect_path)
VALUES (?, ?, ?, ?, ?, ?, ?);
`
	for _, rule := range add {
		if _, err := tx.ExecContext(ctx, insert, rule.ID, rule.RootDomain, string(rule.Scope), rule.Priority, rule.URLFilter, strings.Join(rule.ResourceTypes, ","), rule.RedirectPath); err != nil {
			return fmt.Errorf("add rule %d: %w", rule.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rules tx: %w", err)
	}
	return nil
}
