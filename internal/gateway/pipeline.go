// Copyright 2026 ClimaBill Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gateway

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownAccumulator = errors.New("unknown accumulator")

// Stage transforms an intermediate row set. Stages only ever see rows the
// scope already confined to one tenant.
type Stage interface {
	apply(rows []map[string]interface{}) ([]map[string]interface{}, error)
}

type matchStage struct {
	filter map[string]interface{}
}

// Match keeps rows whose fields equal the filter values. Dotted paths
// descend into nested objects.
func Match(filter map[string]interface{}) Stage {
	return &matchStage{filter: filter}
}

func (m *matchStage) apply(rows []map[string]interface{}) ([]map[string]interface{}, error) {
	var out []map[string]interface{}
	for _, row := range rows {
		keep := true
		for path, want := range m.filter {
			got, ok := lookup(row, path)
			if !ok || !valuesEqual(got, want) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out, nil
}

// Accumulator names a reduction over a group: count, sum, avg, min or max
// of a field.
type Accumulator struct {
	Op    string
	Field string
}

type groupStage struct {
	byField string
	accs    map[string]Accumulator
}

// Group buckets rows by a field and reduces each bucket. The group key is
// emitted under "_id".
func Group(byField string, accs map[string]Accumulator) Stage {
	return &groupStage{byField: byField, accs: accs}
}

func (g *groupStage) apply(rows []map[string]interface{}) ([]map[string]interface{}, error) {
	type bucket struct {
		key  interface{}
		rows []map[string]interface{}
	}

	var order []string
	buckets := make(map[string]*bucket)
	for _, row := range rows {
		key, _ := lookup(row, g.byField)
		id := fmt.Sprint(key)
		b, ok := buckets[id]
		if !ok {
			b = &bucket{key: key}
			buckets[id] = b
			order = append(order, id)
		}
		b.rows = append(b.rows, row)
	}

	out := make([]map[string]interface{}, 0, len(order))
	for _, id := range order {
		b := buckets[id]
		result := map[string]interface{}{"_id": b.key}
		for name, acc := range g.accs {
			v, err := reduce(b.rows, acc)
			if err != nil {
				return nil, err
			}
			result[name] = v
		}
		out = append(out, result)
	}

	return out, nil
}

func reduce(rows []map[string]interface{}, acc Accumulator) (interface{}, error) {
	switch acc.Op {
	case "count":
		return float64(len(rows)), nil
	case "sum", "avg", "min", "max":
	default:
		return nil, fmt.Errorf("%q: %w", acc.Op, ErrUnknownAccumulator)
	}

	var (
		total float64
		min   float64
		max   float64
		n     int
	)
	for _, row := range rows {
		raw, ok := lookup(row, acc.Field)
		if !ok {
			continue
		}
		v, ok := toFloat(raw)
		if !ok {
			continue
		}
		if n == 0 {
			min, max = v, v
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		total += v
		n++
	}

	switch acc.Op {
	case "sum":
		return total, nil
	case "avg":
		if n == 0 {
			return float64(0), nil
		}
		return total / float64(n), nil
	case "min":
		return min, nil
	default:
		return max, nil
	}
}

type projectStage struct {
	fields []string
}

// Project keeps only the named fields of each row.
func Project(fields ...string) Stage {
	return &projectStage{fields: fields}
}

func (p *projectStage) apply(rows []map[string]interface{}) ([]map[string]interface{}, error) {
	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		projected := make(map[string]interface{}, len(p.fields))
		for _, f := range p.fields {
			if v, ok := lookup(row, f); ok {
				projected[f] = v
			}
		}
		out = append(out, projected)
	}
	return out, nil
}

type sortStage struct {
	field      string
	descending bool
}

// Sort orders rows by a field, numerically where both values coerce to
// numbers, lexically otherwise.
func Sort(field string, descending bool) Stage {
	return &sortStage{field: field, descending: descending}
}

func (s *sortStage) apply(rows []map[string]interface{}) ([]map[string]interface{}, error) {
	out := make([]map[string]interface{}, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		a, okA := lookup(out[i], s.field)
		b, okB := lookup(out[j], s.field)

		var cmp int
		switch {
		case !okA && !okB:
			cmp = 0
		case !okA:
			// Rows without the field sort lowest.
			cmp = -1
		case !okB:
			cmp = 1
		default:
			cmp = compareValues(a, b)
		}

		if s.descending {
			return cmp > 0
		}
		return cmp < 0
	})

	return out, nil
}

type limitStage struct {
	n int
}

// Limit truncates the row set.
func Limit(n int) Stage {
	return &limitStage{n: n}
}

func (l *limitStage) apply(rows []map[string]interface{}) ([]map[string]interface{}, error) {
	if l.n < 0 || l.n >= len(rows) {
		return rows, nil
	}
	return rows[:l.n], nil
}

func evalPipeline(rows []map[string]interface{}, stages []Stage) ([]map[string]interface{}, error) {
	var err error
	for _, stage := range stages {
		rows, err = stage.apply(rows)
		if err != nil {
			return nil, err
		}
	}
	if rows == nil {
		rows = []map[string]interface{}{}
	}
	return rows, nil
}

func lookup(row map[string]interface{}, path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	var current interface{} = row
	for _, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func valuesEqual(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func compareValues(a, b interface{}) int {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
