package reconcile

import (
	"sort"

	"asset-sync/core/manifest"
)

// Classify applies the eviction rule to one logical key.
func Classify(key string, current, previous manifest.Map) (ActionType, string) {
	cur, ok := current[key]
	if !ok {
		return ActionEvict, ReasonRemoved
	}
	prev, tracked := previous[key]
	if !tracked {
		return ActionEvict, ReasonUntracked
	}
	if cur != prev {
		return ActionEvict, ReasonChanged
	}
	return ActionRetain, ReasonUnchanged
}

// BuildPlan classifies every cached entry and lists the staged promotions.
// It performs no I/O.
func BuildPlan(in Input) *Plan {
	plan := &Plan{Actions: []Action{}}

	contentKeys := sortedCopy(in.ContentKeys)
	retained := make(map[string]struct{}, len(contentKeys))

	for _, cacheKey := range contentKeys {
		key := manifest.StoredKey(in.Origin, cacheKey)
		typ, reason := Classify(key, in.Current, in.Previous)
		plan.Actions = append(plan.Actions, Action{
			Type:     typ,
			Key:      key,
			CacheKey: cacheKey,
			Reason:   reason,
		})

		plan.Summary.TotalEntries++
		switch typ {
		case ActionRetain:
			plan.Summary.Retained++
			retained[cacheKey] = struct{}{}
		case ActionEvict:
			plan.Summary.Evicted++
			if reason == ReasonRemoved {
				plan.Summary.Removed++
			} else {
				plan.Summary.Changed++
			}
		}
	}

	for _, cacheKey := range sortedCopy(in.StagingKeys) {
		plan.Actions = append(plan.Actions, Action{
			Type:     ActionPromote,
			Key:      manifest.StoredKey(in.Origin, cacheKey),
			CacheKey: cacheKey,
			Reason:   ReasonStaged,
		})
		plan.Summary.Promoted++
		if _, ok := retained[cacheKey]; ok {
			plan.Summary.Overwritten++
		}
	}

	return plan
}

// Evictions returns the evict actions of the plan.
func (p *Plan) Evictions() []Action {
	return p.filter(ActionEvict)
}

// Promotions returns the promote actions of the plan.
func (p *Plan) Promotions() []Action {
	return p.filter(ActionPromote)
}

func (p *Plan) filter(t ActionType) []Action {
	var out []Action
	for _, a := range p.Actions {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

func sortedCopy(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	return out
}
