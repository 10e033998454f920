package services

import (
	"reflect"
	"sort"

	"wayfarer/pkg/utils"
)

// SchemaServiceInterface exposes the strict JSON schema handed to the LLM
// provider for structured output.
type SchemaServiceInterface interface {
	StrictResponseSchema() utils.JSONSchema
}

type SchemaService struct {
	strict utils.JSONSchema
}

// NewSchemaService builds the itinerary response schema once and transforms
// it into the provider's strict dialect. The transformed tree is read-only
// afterwards.
func NewSchemaService() SchemaServiceInterface {
	schema := baseResponseSchema()
	TransformStrict(schema)
	ScrubUnsupportedFormats(schema)
	return &SchemaService{strict: schema}
}

func (s *SchemaService) StrictResponseSchema() utils.JSONSchema {
	return s.strict
}

// TransformStrict rewrites every object node for providers that require all
// properties to be listed as required and reject undeclared properties:
// the required list becomes every property name, additionalProperties is
// forced off, and originally-optional properties are wrapped in a nullable
// union so that optionality survives the dialect change. The visited set is
// keyed on map/slice identity, which keeps the walk safe on schema graphs
// with shared or cyclic subtrees.
func TransformStrict(schema map[string]any) {
	visited := map[uintptr]bool{}
	var visit func(x any)
	visit = func(x any) {
		switch v := x.(type) {
		case map[string]any:
			ptr := reflect.ValueOf(v).Pointer()
			if visited[ptr] {
				return
			}
			visited[ptr] = true
			if v["type"] == "object" {
				if _, ok := v["properties"]; ok {
					transformObject(v)
				}
			}
			for _, key := range sortedKeys(v) {
				visit(v[key])
			}
		case []any:
			ptr := reflect.ValueOf(v).Pointer()
			if visited[ptr] {
				return
			}
			visited[ptr] = true
			for _, item := range v {
				visit(item)
			}
		}
	}
	visit(schema)
}

func transformObject(node map[string]any) {
	props, ok := node["properties"].(map[string]any)
	if !ok {
		return
	}

	origRequired := map[string]bool{}
	switch req := node["required"].(type) {
	case []string:
		for _, name := range req {
			origRequired[name] = true
		}
	case []any:
		for _, name := range req {
			if s, ok := name.(string); ok {
				origRequired[s] = true
			}
		}
	}

	names := sortedKeys(props)
	node["required"] = names
	node["additionalProperties"] = false

	for _, name := range names {
		if !origRequired[name] {
			props[name] = makeNullable(props[name])
		}
	}
}

func isNullable(propSchema any) bool {
	m, ok := propSchema.(map[string]any)
	if !ok {
		return false
	}
	switch t := m["type"].(type) {
	case string:
		if t == "null" {
			return true
		}
	case []any:
		for _, v := range t {
			if v == "null" {
				return true
			}
		}
	}
	if anyOf, ok := m["anyOf"].([]any); ok {
		for _, sub := range anyOf {
			if sm, ok := sub.(map[string]any); ok && sm["type"] == "null" {
				return true
			}
		}
	}
	return false
}

func makeNullable(propSchema any) any {
	if isNullable(propSchema) {
		return propSchema
	}
	return map[string]any{"anyOf": []any{propSchema, map[string]any{"type": "null"}}}
}

// allowedFormats is the set of format annotations the target provider
// understands; everything else (uri, time, ...) gets stripped.
var allowedFormats = map[string]bool{"date": true, "date-time": true, "email": true, "uuid": true}

func ScrubUnsupportedFormats(schema map[string]any) {
	visited := map[uintptr]bool{}
	var visit func(x any)
	visit = func(x any) {
		switch v := x.(type) {
		case map[string]any:
			ptr := reflect.ValueOf(v).Pointer()
			if visited[ptr] {
				return
			}
			visited[ptr] = true
			if fmtStr, ok := v["format"].(string); ok && !allowedFormats[fmtStr] {
				delete(v, "format")
			}
			for _, key := range sortedKeys(v) {
				visit(v[key])
			}
		case []any:
			ptr := reflect.ValueOf(v).Pointer()
			if visited[ptr] {
				return
			}
			visited[ptr] = true
			for _, item := range v {
				visit(item)
			}
		}
	}
	visit(schema)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ---- declarative shape of ItineraryResponse ----

func str() map[string]any            { return map[string]any{"type": "string"} }
func strFmt(f string) map[string]any { return map[string]any{"type": "string", "format": f} }
func number(min, max *float64) map[string]any {
	m := map[string]any{"type": "number"}
	if min != nil {
		m["minimum"] = *min
	}
	if max != nil {
		m["maximum"] = *max
	}
	return m
}
func integer(min, max *float64) map[string]any {
	m := map[string]any{"type": "integer"}
	if min != nil {
		m["minimum"] = *min
	}
	if max != nil {
		m["maximum"] = *max
	}
	return m
}
func boolean() map[string]any { return map[string]any{"type": "boolean"} }
func array(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}
func object(props map[string]any, required ...string) map[string]any {
	return map[string]any{"type": "object", "properties": props, "required": required}
}
func enum(values ...any) map[string]any {
	return map[string]any{"type": "string", "enum": values}
}

func f(v float64) *float64 { return &v }

// baseResponseSchema is the pre-transform schema of ItineraryResponse.
// Sub-schemas used in several places (money, place, travel leg) are shared
// by reference, which is exactly the aliasing TransformStrict has to
// tolerate.
func baseResponseSchema() map[string]any {
	money := object(map[string]any{
		"currency":   str(),
		"amount_min": number(f(0), nil),
		"amount_max": number(f(0), nil),
		"notes":      str(),
	})

	place := object(map[string]any{
		"name":            str(),
		"address":         str(),
		"coordinates":     object(map[string]any{"lat": number(f(-90), f(90)), "lng": number(f(-180), f(180))}, "lat", "lng"),
		"google_maps_url": strFmt("uri"),
		"website":         strFmt("uri"),
	}, "name")

	travelLeg := object(map[string]any{
		"mode":             enum("walk", "public_transit", "train", "bus", "car", "bike", "rideshare", "flight", "ferry"),
		"distance_km":      number(f(0), nil),
		"duration_minutes": integer(f(0), nil),
		"from_place":       place,
		"to_place":         place,
		"notes":            str(),
	}, "mode")

	booking := object(map[string]any{
		"required":              boolean(),
		"recommended_timeframe": str(),
		"url":                   strFmt("uri"),
		"cost":                  money,
		"confirmation_ref":      str(),
	})

	activity := object(map[string]any{
		"title": str(),
		"category": enum("sightseeing", "museum", "landmark", "food", "coffee", "bar",
			"nightlife", "shopping", "nature", "beach", "hike", "experience",
			"transport", "hotel", "break"),
		"start_time":       strFmt("time"),
		"end_time":         strFmt("time"),
		"place":            place,
		"description":      str(),
		"booking":          booking,
		"estimated_cost":   money,
		"travel_from_prev": travelLeg,
		"tags":             array(str()),
		"tips":             array(str()),
	}, "title")

	weather := object(map[string]any{
		"summary":       str(),
		"high_c":        number(f(-60), f(60)),
		"low_c":         number(f(-60), f(60)),
		"precip_chance": number(f(0), f(1)),
	})

	dayPlan := object(map[string]any{
		"day_index":  integer(f(1), nil),
		"date":       strFmt("date"),
		"summary":    str(),
		"weather":    weather,
		"activities": array(activity),
		"notes":      array(str()),
	}, "day_index", "date")

	logistics := object(map[string]any{
		"arrival":          travelLeg,
		"departure":        travelLeg,
		"transit_tips":     array(str()),
		"safety_etiquette": array(str()),
		"map_overview_url": strFmt("uri"),
	})

	meta := object(map[string]any{
		"schema_version":   str(),
		"generated_at_iso": str(),
		"generator":        str(),
	})

	return object(map[string]any{
		"destination":     str(),
		"start_date":      strFmt("date"),
		"end_date":        strFmt("date"),
		"total_days":      integer(f(1), nil),
		"timezone":        str(),
		"currency":        str(),
		"travelers_count": integer(f(1), f(12)),
		"interests":       array(str()),
		"daily_plan":      array(dayPlan),
		"logistics":       logistics,
		"meta":            meta,
	}, "destination", "start_date", "end_date", "total_days")
}
