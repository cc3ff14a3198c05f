// Package farm defines the static tool catalog the assistant exposes to
// the model: weather, market prices, field and equipment records, and
// livestock operations. The REST clients behind these tools live outside
// the orchestration core; only names, descriptions and argument schemas
// are declared here.
package farm

import "farmai/pkg/tool"

// Category names used to pre-filter declarations per request.
const (
	CategoryWeather   = "weather"
	CategoryMarket    = "market"
	CategoryField     = "field"
	CategoryEquipment = "equipment"
	CategoryLivestock = "livestock"
)

// Tool names as the model sees them.
const (
	ToolCurrentWeather  = "getCurrentWeather"
	ToolWeatherForecast = "getWeatherForecast"
	ToolMarketPrices    = "getMarketPrices"
	ToolListFields      = "listFields"
	ToolGetField        = "getField"
	ToolListEquipment   = "listEquipment"
	ToolListLivestock   = "listLivestock"
	ToolRecordLivestock = "recordLivestockEvent"
)

// CurrentWeatherArgs are the arguments for getCurrentWeather.
type CurrentWeatherArgs struct {
	Latitude  float64 `json:"latitude,omitempty" description:"Latitude of the location"`
	Longitude float64 `json:"longitude,omitempty" description:"Longitude of the location"`
}

// ForecastArgs are the arguments for getWeatherForecast.
type ForecastArgs struct {
	Latitude  float64 `json:"latitude,omitempty" description:"Latitude of the location"`
	Longitude float64 `json:"longitude,omitempty" description:"Longitude of the location"`
	Days      int     `json:"days,omitempty" description:"Number of forecast days, 1-7"`
}

// MarketPricesArgs are the arguments for getMarketPrices.
type MarketPricesArgs struct {
	Commodity string `json:"commodity" description:"Commodity symbol, e.g. corn, wheat, soybeans"`
	Exchange  string `json:"exchange,omitempty" description:"Exchange to quote from"`
}

// FieldArgs are the arguments for getField.
type FieldArgs struct {
	FieldID string `json:"fieldId" description:"Identifier of the field"`
}

// LivestockEventArgs are the arguments for recordLivestockEvent.
type LivestockEventArgs struct {
	AnimalID  string `json:"animalId" description:"Identifier of the animal or herd"`
	EventType string `json:"eventType" description:"Event type" enum:"feeding,vaccination,weighing,movement"`
	Notes     string `json:"notes,omitempty" description:"Free-form notes"`
}

var emptySchema = map[string]any{
	"type":       "object",
	"properties": map[string]any{},
}

// RegisterAll installs the full farm catalog into the registry. The order
// below is the declaration order sent to vendors, so weather tools stay
// first for the most common queries.
func RegisterAll(r *tool.Registry) error {
	specs := []tool.Spec{
		{
			Name:        ToolCurrentWeather,
			Description: "Get current weather conditions for the farm or a given location",
			Category:    CategoryWeather,
			Parameters:  tool.GenerateSchema(CurrentWeatherArgs{}),
		},
		{
			Name:        ToolWeatherForecast,
			Description: "Get a multi-day weather forecast for the farm or a given location",
			Category:    CategoryWeather,
			Parameters:  tool.GenerateSchema(ForecastArgs{}),
		},
		{
			Name:        ToolMarketPrices,
			Description: "Get current market prices for an agricultural commodity",
			Category:    CategoryMarket,
			Parameters:  tool.GenerateSchema(MarketPricesArgs{}),
		},
		{
			Name:        ToolListFields,
			Description: "List all fields registered for this farm with crop and acreage",
			Category:    CategoryField,
			Parameters:  emptySchema,
		},
		{
			Name:        ToolGetField,
			Description: "Get details for one field: crop, acreage, soil, last operations",
			Category:    CategoryField,
			Parameters:  tool.GenerateSchema(FieldArgs{}),
		},
		{
			Name:        ToolListEquipment,
			Description: "List farm equipment with status and engine hours",
			Category:    CategoryEquipment,
			Parameters:  emptySchema,
		},
		{
			Name:        ToolListLivestock,
			Description: "List livestock groups with head counts and recent events",
			Category:    CategoryLivestock,
			Parameters:  emptySchema,
		},
		{
			Name:        ToolRecordLivestock,
			Description: "Record a livestock event such as feeding, vaccination or weighing",
			Category:    CategoryLivestock,
			Parameters:  tool.GenerateSchema(LivestockEventArgs{}),
		},
	}

	for _, s := range specs {
		if err := r.Register(s); err != nil {
			return err
		}
	}
	return nil
}
