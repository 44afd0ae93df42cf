package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/kilianp07/skejul/core/llm"
	"github.com/kilianp07/skejul/core/model"
)

// ParseSchedule decodes a generator answer for group. The answer is
// normally an object keyed by class group. When the group key is absent a
// bare day map is accepted, then a single entry under any other key.
func ParseSchedule(raw, group string) (model.ClassSchedule, error) {
	body := llm.StripCodeFences(raw)
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &top); err != nil {
		return nil, fmt.Errorf("%w: schedule for %s: %v", ErrMalformedOutput, group, err)
	}

	var entry json.RawMessage
	switch v, ok := top[group]; {
	case ok:
		entry = v
	case isDayMap(top):
		entry = json.RawMessage(body)
	case len(top) == 1:
		for _, v := range top {
			entry = v
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrGroupMissing, group)
	}

	var sched model.ClassSchedule
	if err := json.Unmarshal(entry, &sched); err != nil {
		return nil, fmt.Errorf("%w: schedule for %s: %v", ErrMalformedOutput, group, err)
	}
	if sched == nil {
		return nil, fmt.Errorf("%w: %s", ErrGroupMissing, group)
	}
	return sched.Normalize(), nil
}

func isDayMap(m map[string]json.RawMessage) bool {
	if len(m) == 0 {
		return false
	}
	for k := range m {
		if _, ok := model.ParseDay(k); !ok {
			return false
		}
	}
	return true
}
