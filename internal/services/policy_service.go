package services

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"

	"github.com/CamiloBytes/reportesvc/domain"
)

// rbacModel is the Casbin model for route authorization. Role inheritance
// rides the g rules, so a policy granted to role_visitor also admits users
// and admins.
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
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// PolicyServiceImpl implements domain.PolicyService using Casbin with an
// in-memory model. Policies live with the process; there is no policy
// database to persist to.
type PolicyServiceImpl struct {
	enforcer *casbin.Enforcer
}

// NewPolicyService creates an enforcer with the visitor < user < admin
// hierarchy already linked.
func NewPolicyService() (*PolicyServiceImpl, error) {
	m, err := casbinmodel.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to build casbin model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to build casbin enforcer: %w", err)
	}

	// admin inherits user, user inherits visitor.
	if _, err := enforcer.AddGroupingPolicy(casbinRole(domain.RoleAdmin), casbinRole(domain.RoleUser)); err != nil {
		return nil, err
	}
	if _, err := enforcer.AddGroupingPolicy(casbinRole(domain.RoleUser), casbinRole(domain.RoleVisitor)); err != nil {
		return nil, err
	}

	return &PolicyServiceImpl{enforcer: enforcer}, nil
}

func casbinRole(role domain.Role) string {
	return "role_" + string(role)
}

// AddPolicy implements domain.PolicyService.
func (p *PolicyServiceImpl) AddPolicy(role, resource, action string) error {
	_, err := p.enforcer.AddPolicy(role, resource, action)
	return err
}

// RemovePolicy implements domain.PolicyService.
func (p *PolicyServiceImpl) RemovePolicy(role, resource, action string) error {
	_, err := p.enforcer.RemovePolicy(role, resource, action)
	return err
}

// CheckPermission implements domain.PolicyService. role is a domain role
// name without the casbin prefix.
func (p *PolicyServiceImpl) CheckPermission(role, resource, action string) (bool, error) {
	return p.enforcer.Enforce("role_"+role, resource, action)
}

// GetPolicies implements domain.PolicyService.
func (p *PolicyServiceImpl) GetPolicies() [][]string {
	policies, _ := p.enforcer.GetPolicy()
	return policies
}

// SeedDefaultPolicies installs the route policy the service ships with:
// any authenticated role may read its own profile, log out and view the
// dashboard; triage writes are admin only.
func (p *PolicyServiceImpl) SeedDefaultPolicies() error {
	defaults := [][3]string{
		{casbinRole(domain.RoleVisitor), "/auth/me", "GET"},
		{casbinRole(domain.RoleVisitor), "/auth/logout", "POST"},
		{casbinRole(domain.RoleVisitor), "/dashboard", "GET"},
		{casbinRole(domain.RoleAdmin), "/reports/*", "(POST|PUT|PATCH)"},
		{casbinRole(domain.RoleAdmin), "/damage/*", "(POST|PUT|PATCH)"},
	}
	for _, d := range defaults {
		if _, err := p.enforcer.AddPolicy(d[0], d[1], d[2]); err != nil {
			return err
		}
	}
	return nil
}

// Enforcer exposes the underlying enforcer for the HTTP middleware.
func (p *PolicyServiceImpl) Enforcer() *casbin.Enforcer {
	return p.enforcer
}

var _ domain.PolicyService = (*PolicyServiceImpl)(nil)
