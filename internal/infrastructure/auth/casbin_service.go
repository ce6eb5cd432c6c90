package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// DefaultPolicyModel matches role subjects against keyMatch2 paths and regex methods
const DefaultPolicyModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds an in-memory enforcer and seeds it with
// (subject, object, action) policies.
func NewCasbinService(modelText string, policies [][]string) (*CasbinService, error) {
	if modelText == "" {
		modelText = DefaultPolicyModel
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("casbin model: %w", err)
	}
	E, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	for _, p := range policies {
		if len(p) != 3 {
			return nil, fmt.Errorf("casbin policy %v: expected subject, object, action", p)
		}
		if _, err := E.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	return &CasbinService{E}, nil
}
