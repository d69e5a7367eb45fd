package orchestrator

import (
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// FlowRule is one OpenFlow rule pushed to the controller for a firewall.
// The subnet placeholder in a template's match fields is substituted with
// the firewall's subnet at generation time.
type FlowRule struct {
	Priority int               `yaml:"priority" json:"priority"`
	Action   string            `yaml:"action" json:"action"`
	Match    map[string]string `yaml:"match" json:"match"`
}

const subnetPlaceholder = "{subnet}"

var (
	policyMu sync.RWMutex
	policies map[string][]FlowRule
)

// Built-in catalog, used when no policies.yaml is present. Mirrors the rule
// sets the manager has always shipped with.
func defaultPolicies() map[string][]FlowRule {
	return map[string][]FlowRule{
		"default": {
			{Priority: 100, Action: "drop", Match: map[string]string{"ipv4_src": subnetPlaceholder, "ip_proto": "any"}},
			{Priority: 100, Action: "drop", Match: map[string]string{"ipv4_dst": subnetPlaceholder, "ip_proto": "any"}},
		},
		"web": {
			{Priority: 200, Action: "allow", Match: map[string]string{"tcp_dst": "80"}},
			{Priority: 200, Action: "allow", Match: map[string]string{"tcp_dst": "443"}},
			{Priority: 100, Action: "drop", Match: map[string]string{"ipv4_src": subnetPlaceholder, "ip_proto": "any"}},
		},
		"database": {
			{Priority: 200, Action: "allow", Match: map[string]string{"tcp_dst": "3306"}},
			{Priority: 200, Action: "allow", Match: map[string]string{"tcp_dst": "5432"}},
			{Priority: 100, Action: "drop", Match: map[string]string{"ipv4_src": subnetPlaceholder, "ip_proto": "any"}},
		},
	}
}

// loadPolicies reads the policy catalog from path, falling back to the
// built-in catalog when the file does not exist.
func loadPolicies(path string) error {
	policyMu.Lock()
	defer policyMu.Unlock()

	policies = defaultPolicies()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var loaded map[string][]FlowRule
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return err
	}
	for name, rules := range loaded {
		policies[name] = rules
	}
	return nil
}

// FlowRules expands the named policy's templates for the given subnet. An
// unknown policy yields no rules, matching the original generator.
func FlowRules(subnet, policy string) []FlowRule {
	policyMu.RLock()
	templates := policies[policy]
	policyMu.RUnlock()

	rules := make([]FlowRule, 0, len(templates))
	for _, tpl := range templates {
		rule := FlowRule{
			Priority: tpl.Priority,
			Action:   tpl.Action,
			Match:    make(map[string]string, len(tpl.Match)),
		}
		for k, v := range tpl.Match {
			rule.Match[k] = strings.ReplaceAll(v, subnetPlaceholder, subnet)
		}
		rules = append(rules, rule)
	}
	return rules
}

// PolicyNames lists the catalog for the deploy form's policy selector, in a
// stable alphabetical order.
func PolicyNames() []string {
	policyMu.RLock()
	defer policyMu.RUnlock()

	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
