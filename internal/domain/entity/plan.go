package entity

import "fmt"

// Plan represents a subscription tier. Tiers form a fixed total order
// used for entitlement decisions; the order is explicit, not alphabetic.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanStarter Plan = "starter"
	PlanPro     Plan = "pro"
	PlanAgency  Plan = "agency"
)

var planRanks = map[Plan]int{
	PlanFree:    0,
	PlanStarter: 1,
	PlanPro:     2,
	PlanAgency:  3,
}

// ParsePlan validates a plan string received from the outside.
func ParsePlan(s string) (Plan, error) {
	p := Plan(s)
	if _, ok := planRanks[p]; !ok {
		return "", fmt.Errorf("unknown plan: %q", s)
	}
	return p, nil
}

// Rank returns the plan's position in the tier order. Unknown plans
// rank below free so a corrupted value can never grant access.
func (p Plan) Rank() int {
	if rank, ok := planRanks[p]; ok {
		return rank
	}
	return -1
}

// Covers reports whether a license on this plan satisfies the given
// minimum required plan.
func (p Plan) Covers(required Plan) bool {
	return p.Rank() >= required.Rank()
}

// IsPurchasable reports whether the plan can be bought through checkout.
// Free is a tier, not a product.
func (p Plan) IsPurchasable() bool {
	return p == PlanStarter || p == PlanPro || p == PlanAgency
}

func (p Plan) String() string {
	return string(p)
}
