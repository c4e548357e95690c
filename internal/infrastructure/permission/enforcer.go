// Package permission guards the admin API with a casbin RBAC model keyed by
// account role, request path and HTTP method.
package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// defaultPolicies grant admins the whole admin surface. Developers inherit
// every admin permission.
var defaultPolicies = [][]string{
	{authorization.RoleAdmin.String(), "/admin/*", "(GET)|(POST)|(DELETE)"},
}

var defaultGroupings = [][]string{
	{authorization.RoleDeveloper.String(), authorization.RoleAdmin.String()},
}

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer stores policies in the casbin_rule table through the gorm
// adapter. With a nil db the policies live in memory only.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	var enforcer *casbin.Enforcer
	if db != nil {
		adapter, err := gormadapter.NewAdapterByDB(db)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
		}
		enforcer, err = casbin.NewEnforcer(m, adapter)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
		}
	} else {
		enforcer, err = casbin.NewEnforcer(m)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
		}
	}

	e := &Enforcer{enforcer: enforcer, logger: log}
	if err := e.seedDefaults(db != nil); err != nil {
		return nil, err
	}
	return e, nil
}

// seedDefaults adds the built-in role policies that are missing.
func (e *Enforcer) seedDefaults(persist bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	added := false
	for _, p := range defaultPolicies {
		ok, err := e.enforcer.AddPolicy(p[0], p[1], p[2])
		if err != nil {
			return fmt.Errorf("failed to add policy %v: %w", p, err)
		}
		added = added || ok
	}
	for _, g := range defaultGroupings {
		ok, err := e.enforcer.AddGroupingPolicy(g[0], g[1])
		if err != nil {
			return fmt.Errorf("failed to add grouping %v: %w", g, err)
		}
		added = added || ok
	}

	if added {
		e.logger.Infow("default admin permissions initialized", "persisted", persist)
	}
	return nil
}

// Enforce reports whether role may call method on path.
func (e *Enforcer) Enforce(role, path, method string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(role, path, method)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "role", role, "path", path, "method", method)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

// AddPolicy grants role the methods on pathPattern.
func (e *Enforcer) AddPolicy(role, pathPattern, methods string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddPolicy(role, pathPattern, methods); err != nil {
		e.logger.Errorw("failed to add policy", "error", err)
		return fmt.Errorf("failed to add policy: %w", err)
	}
	return nil
}

// RemovePolicy revokes a policy added with AddPolicy.
func (e *Enforcer) RemovePolicy(role, pathPattern, methods string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.RemovePolicy(role, pathPattern, methods); err != nil {
		e.logger.Errorw("failed to remove policy", "error", err)
		return fmt.Errorf("failed to remove policy: %w", err)
	}
	return nil
}
