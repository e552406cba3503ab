// Package export turns the audit event log into CSV for offline analysis.
package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"productivity-ledger/internal/model"
	"productivity-ledger/internal/service"
)

// EventCSV renders one row per event. Nested payload fields flatten to
// dot-notation columns (payload.duration), array values join with ";", and
// the header puts timestamp and event_type first with the rest alphabetical.
func EventCSV(events []model.Event) (string, error) {
	if len(events) == 0 {
		return "", nil
	}

	flat := make([]map[string]string, 0, len(events))
	columns := make(map[string]struct{})
	for _, e := range events {
		row, err := flattenEvent(e)
		if err != nil {
			return "", err
		}
		for col := range row {
			columns[col] = struct{}{}
		}
		flat = append(flat, row)
	}

	headers := make([]string, 0, len(columns))
	for col := range columns {
		headers = append(headers, col)
	}
	sort.Slice(headers, func(i, j int) bool {
		return headerRank(headers[i], headers[j])
	})

	var sb strings.Builder
	writeRow(&sb, headers)
	for _, row := range flat {
		cells := make([]string, len(headers))
		for i, col := range headers {
			cells[i] = row[col]
		}
		writeRow(&sb, cells)
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// AggregateCSV renders the daily history table shown on the analysis view.
func AggregateCSV(days []service.DailyAggregate) string {
	if len(days) == 0 {
		return ""
	}
	var sb strings.Builder
	writeRow(&sb, []string{"Date", "Work Score (%)", "Procrastination Score (%)", "Points Earned", "Work Time (m)", "Distraction Time (m)", "Tasks Done"})
	for _, d := range days {
		writeRow(&sb, []string{
			d.Date.Format(model.DateLayout),
			fmt.Sprintf("%d", d.WorkScore),
			fmt.Sprintf("%d", d.ProcrastinationScore),
			fmt.Sprintf("%d", d.PointsScored),
			fmt.Sprintf("%d", int(d.TaskTime)),
			fmt.Sprintf("%d", int(d.DistractionTime)),
			fmt.Sprintf("%d", d.TasksDoneCount),
		})
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// headerRank sorts timestamp first, event_type second, the rest by name.
func headerRank(a, b string) bool {
	rank := func(s string) int {
		switch s {
		case "timestamp":
			return 0
		case "event_type":
			return 1
		default:
			return 2
		}
	}
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra < rb
	}
	return a < b
}

// flattenEvent goes through JSON so the flattened view matches the stored
// wire shape exactly.
func flattenEvent(e model.Event) (map[string]string, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("serialize event %s: %w", e.EventID, err)
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("reparse event %s: %w", e.EventID, err)
	}
	out := make(map[string]string)
	flattenInto(out, "", generic)
	return out, nil
}

func flattenInto(out map[string]string, prefix string, value map[string]any) {
	for k, v := range value {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch typed := v.(type) {
		case map[string]any:
			flattenInto(out, key, typed)
		case []any:
			parts := make([]string, len(typed))
			for i, item := range typed {
				parts[i] = scalarString(item)
			}
			out[key] = strings.Join(parts, ";")
		default:
			out[key] = scalarString(v)
		}
	}
}

func scalarString(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return fmt.Sprintf("%t", typed)
	case float64:
		// JSON numbers; render integers without the trailing ".0".
		if typed == float64(int64(typed)) {
			return fmt.Sprintf("%d", int64(typed))
		}
		return fmt.Sprintf("%g", typed)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

// writeRow escapes cells containing commas, quotes or newlines by wrapping
// them in double quotes with internal quotes doubled.
func writeRow(sb *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteByte(',')
		}
		if strings.ContainsAny(cell, ",\"\n") {
			sb.WriteByte('"')
			sb.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			sb.WriteByte('"')
		} else {
			sb.WriteString(cell)
		}
	}
	sb.WriteByte('\n')
}
