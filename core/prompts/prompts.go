// Package prompts holds the instructions sent to the language model and the
// JSON schema describing the extraction answer.
package prompts

// ExtractSystemPrompt asks the model to pull structured scheduling facts out
// of free text.
const ExtractSystemPrompt = `You read descriptions of a school's weekly routine and return the facts as JSON.

Return ONLY a JSON object with these fields:
- days: list of school days, e.g. ["Monday", "Tuesday"]
- start_time: time the school day starts, e.g. "7:30 AM"
- end_time: time the school day ends, e.g. "2:00 PM"
- periods: named non-teaching periods, each {type, start, end}; type is one of
  class, break, prayer, activity, lunch, assembly, other
- class_groups: each {name, subjects}; subjects are {name, teacher, slots_per_week}

Rules:
1. Use empty strings or empty lists for facts the text does not state.
2. Never invent class groups, subjects or teachers.
3. Keep times exactly as written when possible.
4. Output JSON only, no markdown and no commentary.`

// GenerateSystemPrompt asks the model to build the week of one class group.
const GenerateSystemPrompt = `You build weekly school timetables.

You receive a JSON object with the school days, the day's start and end time,
the fixed named periods, exactly one class group with its subjects and
teachers, and teacher_constraints: the slots each teacher is already teaching
in other class groups ("<Day> <start>-<end>").

Build the week for that class group:
1. Fill the whole school day from start_time to end_time on every school day.
2. Keep every named period (break, assembly, lunch, ...) at its given time.
3. Give each subject exactly slots_per_week class periods when time allows,
   and at least one.
4. Never schedule a teacher in a slot listed in teacher_constraints.
5. Spread a subject over different days rather than stacking it.

Return ONLY JSON shaped as:
{"<class group name>": {"<Day>": [{"period_no": 1, "start": "7:30 AM", "end": "8:10 AM",
  "type": "class", "subject": {"name": "...", "teacher_name": "..."}}]}}
Use "subject": null for periods that are not classes. No markdown.`

// ExtractionSchemaName names the structured output schema.
const ExtractionSchemaName = "timetable_data"

// ExtractionSchema describes the extraction answer.
func ExtractionSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"days": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"start_time":   map[string]any{"type": "string"},
			"end_time":     map[string]any{"type": "string"},
			"periods":      arraySchema(PeriodSchema()),
			"class_groups": arraySchema(ClassGroupSchema()),
		},
		"required":             []string{"days", "start_time", "end_time", "periods", "class_groups"},
		"additionalProperties": false,
	}
}

// PeriodSchema describes one named period.
func PeriodSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type":  EnumSchema("class", "break", "prayer", "activity", "lunch", "assembly", "other"),
			"start": map[string]any{"type": "string"},
			"end":   map[string]any{"type": "string"},
		},
		"required":             []string{"type", "start", "end"},
		"additionalProperties": false,
	}
}

// ClassGroupSchema describes a class group with its subjects.
func ClassGroupSchema() map[string]any {
	subject := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":           map[string]any{"type": "string"},
			"teacher":        map[string]any{"type": "string"},
			"slots_per_week": map[string]any{"type": "integer"},
		},
		"required":             []string{"name", "teacher", "slots_per_week"},
		"additionalProperties": false,
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":     map[string]any{"type": "string"},
			"subjects": arraySchema(subject),
		},
		"required":             []string{"name", "subjects"},
		"additionalProperties": false,
	}
}

// EnumSchema restricts a string to the given values.
func EnumSchema(values ...string) map[string]any {
	return map[string]any{"type": "string", "enum": values}
}

func arraySchema(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}
