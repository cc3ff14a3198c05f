package parser

import (
	"sort"
	"strings"

	"farmai/pkg/tool/farm"
)

// Synthesis fallback: when the model supplied no visualization at all,
// standard ones are built straight from the tool results. Each rule is
// gated on the answer text actually being about the result's domain, so a
// weather-only answer never grows a field-list table.

var domainKeywords = map[string][]string{
	farm.ToolCurrentWeather:  {"weather", "temperature", "conditions", "wind", "humidity", "rain"},
	farm.ToolWeatherForecast: {"forecast", "weather", "temperature", "rain", "week", "days"},
	farm.ToolMarketPrices:    {"price", "market", "bushel", "commodity", "sell", "trade"},
	farm.ToolListFields:      {"field", "crop", "acre", "planted", "soil"},
	farm.ToolGetField:        {"field", "crop", "acre", "planted", "soil"},
	farm.ToolListEquipment:   {"equipment", "tractor", "machine", "harvester", "maintenance"},
	farm.ToolListLivestock:   {"livestock", "cattle", "herd", "animal", "sheep", "pig"},
}

func relatedToDomain(answer, toolName string) bool {
	keywords, ok := domainKeywords[toolName]
	if !ok {
		return false
	}
	lower := strings.ToLower(answer)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func synthesize(outputs []ToolOutput, answer string) []Visualization {
	var out []Visualization
	for _, o := range outputs {
		if !o.Result.Success || o.Result.Data == nil {
			continue
		}
		if !relatedToDomain(answer, o.Name) {
			continue
		}

		switch o.Name {
		case farm.ToolCurrentWeather:
			if v, ok := currentConditionsMetric(o.Result.Data); ok {
				out = append(out, v)
			}
		case farm.ToolWeatherForecast:
			if v, ok := forecastChart(o.Result.Data); ok {
				out = append(out, v)
			}
		case farm.ToolMarketPrices:
			if v, ok := priceMetric(o.Result.Data); ok {
				out = append(out, v)
			}
		case farm.ToolListFields, farm.ToolListEquipment, farm.ToolListLivestock:
			if v, ok := summaryTable(o.Name, o.Result.Data); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

func currentConditionsMetric(data any) (Visualization, bool) {
	obj, ok := data.(map[string]any)
	if !ok {
		return Visualization{}, false
	}
	value, ok := firstNumber(obj, "temperature", "temp")
	if !ok {
		return Visualization{}, false
	}

	unit, _ := obj["unit"].(string)
	if unit == "" {
		unit = "°F"
	}
	context, _ := obj["conditions"].(string)

	return Visualization{
		Type:  VizMetric,
		Title: "Current Conditions",
		Data: map[string]any{
			"value":   value,
			"label":   "Temperature",
			"unit":    unit,
			"context": context,
		},
	}, true
}

func forecastChart(data any) (Visualization, bool) {
	days := asList(data, "days", "forecast")
	if len(days) == 0 {
		return Visualization{}, false
	}
	return Visualization{
		Type:  VizChart,
		Title: "Temperature Trend",
		Data: map[string]any{
			"dataset": days,
			"xKey":    "date",
			"series": []any{
				map[string]any{"key": "high", "label": "High"},
				map[string]any{"key": "low", "label": "Low"},
			},
		},
	}, true
}

func priceMetric(data any) (Visualization, bool) {
	obj, ok := data.(map[string]any)
	if !ok {
		return Visualization{}, false
	}
	value, ok := firstNumber(obj, "price", "last")
	if !ok {
		return Visualization{}, false
	}

	unit, _ := obj["unit"].(string)
	context, _ := obj["commodity"].(string)

	return Visualization{
		Type:  VizMetric,
		Title: "Market Price",
		Data: map[string]any{
			"value":   value,
			"label":   "Price",
			"unit":    unit,
			"context": context,
		},
	}, true
}

var tableTitles = map[string]string{
	farm.ToolListFields:    "Fields",
	farm.ToolListEquipment: "Equipment",
	farm.ToolListLivestock: "Livestock",
}

// summaryTable flattens a list of uniform objects into headers + rows.
// Headers come from the first row's keys, sorted for determinism.
func summaryTable(toolName string, data any) (Visualization, bool) {
	items := asList(data, "items", "fields", "equipment", "groups")
	if len(items) == 0 {
		return Visualization{}, false
	}
	first, ok := items[0].(map[string]any)
	if !ok {
		return Visualization{}, false
	}

	headers := make([]string, 0, len(first))
	for key := range first {
		headers = append(headers, key)
	}
	sort.Strings(headers)

	rows := make([]any, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		row := make([]any, len(headers))
		for i, h := range headers {
			row[i] = obj[h]
		}
		rows = append(rows, row)
	}

	headerList := make([]any, len(headers))
	for i, h := range headers {
		headerList[i] = h
	}

	return Visualization{
		Type:  VizTable,
		Title: tableTitles[toolName],
		Data: map[string]any{
			"headers": headerList,
			"rows":    rows,
		},
	}, true
}

// asList accepts either a bare list or an object wrapping one under any
// of the given keys; dispatchers are free to shape results either way.
func asList(data any, keys ...string) []any {
	if list, ok := data.([]any); ok {
		return list
	}
	obj, ok := data.(map[string]any)
	if !ok {
		return nil
	}
	for _, key := range keys {
		if list, ok := obj[key].([]any); ok {
			return list
		}
	}
	return nil
}

func firstNumber(obj map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		switch v := obj[key].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		}
	}
	return 0, false
}
