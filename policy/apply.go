package policy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goACL "github.com/MrEthical07/goACL"
	"github.com/MrEthical07/goACL/nameset"
)

// Validate reports every structural problem in the document as a
// human-readable issue. An empty slice means the document is applyable.
//
// Names are compared after normalization, so "Super Admin" in a rule
// matches a declared "super-admin".
func Validate(doc *Document) []string {
	if doc == nil {
		return []string{"policy document is nil"}
	}

	roles, issues := declare("roles", doc.Roles)
	actions, actionIssues := declare("actions", doc.Actions)
	issues = append(issues, actionIssues...)

	for i, rule := range doc.Rules {
		prefix := fmt.Sprintf("rules[%d]", i)
		if len(rule.Roles) == 0 {
			issues = append(issues, prefix+": at least one role is required")
		}
		if len(rule.Actions) == 0 {
			issues = append(issues, prefix+": at least one action is required")
		}
		for j, name := range rule.Roles {
			if _, ok := roles[nameset.Normalize(name)]; !ok {
				issues = append(issues, fmt.Sprintf("%s.roles[%d] %q: not declared under roles", prefix, j, name))
			}
		}
		for j, name := range rule.Actions {
			if _, ok := actions[nameset.Normalize(name)]; !ok {
				issues = append(issues, fmt.Sprintf("%s.actions[%d] %q: not declared under actions", prefix, j, name))
			}
		}
	}

	return issues
}

// declare builds the normalized-name index for one declaration list and
// collects issues for names that normalize to nothing or collide with an
// earlier entry.
func declare(kind string, raw []string) (map[string]int, []string) {
	var issues []string
	seen := make(map[string]int, len(raw))
	for i, name := range raw {
		norm := nameset.Normalize(name)
		if norm == "" {
			issues = append(issues, fmt.Sprintf("%s[%d] %q: empty after normalization", kind, i, name))
			continue
		}
		if first, ok := seen[norm]; ok {
			issues = append(issues, fmt.Sprintf("%s[%d] %q: duplicate of %s[%d]", kind, i, name, kind, first))
			continue
		}
		seen[norm] = i
	}
	return seen, issues
}

// Apply declares the document's roles and actions on the engine, then
// replays its rules in order. The document is validated first; a document
// with issues leaves the engine untouched.
//
// Each rule is one engine call, so an attached engine syncs once per rule.
// To load a large policy with a single sync, apply it before attaching
// the store.
func Apply(ctx context.Context, doc *Document, engine *goACL.Engine) error {
	if engine == nil {
		return errors.New("engine is nil")
	}
	if issues := Validate(doc); len(issues) > 0 {
		return fmt.Errorf("invalid policy: %s", strings.Join(issues, "; "))
	}

	if err := engine.AddRoles(ctx, doc.Roles...); err != nil {
		return fmt.Errorf("declare roles: %w", err)
	}
	if err := engine.AddActions(ctx, doc.Actions...); err != nil {
		return fmt.Errorf("declare actions: %w", err)
	}

	for i, rule := range doc.Rules {
		var err error
		if rule.Deny {
			err = engine.Deny(ctx, rule.Roles, rule.Actions)
		} else {
			err = engine.Allow(ctx, rule.Roles, rule.Actions)
		}
		if err != nil {
			return fmt.Errorf("rules[%d]: %w", i, err)
		}
	}
	return nil
}
