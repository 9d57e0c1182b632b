package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Shared argument descriptions. Every chart-bearing tool takes the same
// birth parameters; coordinates and ayanamsa default from the config.
const (
	birthTimeDesc = "Birth date and time, RFC3339 (e.g. 1984-08-27T06:15:00+05:30) or YYYY-MM-DDTHH:MM resolved in the configured timezone; a bare YYYY-MM-DD is taken at local noon"
	latitudeDesc  = "Birth latitude in degrees, -90 to 90 (default: configured location)"
	longitudeDesc = "Birth longitude in degrees, -180 to 180 (default: configured location)"
	ayanamsaDesc  = "Ayanamsa system: lahiri, raman, krishnamurti, yukteshwar, fagan, deluce, djwhal_khul (default: configured system)"
)

var numerologyToolDef = mcp.NewTool("graha_numerology",
	mcp.WithDescription("Compute the Vedic core numbers (Mulanka and Bhagyanka) for a birth, with the sunrise day correction and the ruling-planet relationship."),
	mcp.WithString("birth_datetime", mcp.Required(), mcp.Description(birthTimeDesc)),
	mcp.WithNumber("latitude", mcp.Description(latitudeDesc)),
	mcp.WithNumber("longitude", mcp.Description(longitudeDesc)),
	mcp.WithBoolean("skip_sunrise_correction", mcp.Description("Disable the Vedic sunrise day-boundary correction")),
	mcp.WithBoolean("save", mcp.Description("Persist the reading and return its ID")),
)

var chartToolDef = mcp.NewTool("graha_chart",
	mcp.WithDescription("Cast a complete sidereal birth chart: planetary positions with retrograde and combustion flags, ascendant, and house cusps."),
	mcp.WithString("birth_datetime", mcp.Required(), mcp.Description(birthTimeDesc)),
	mcp.WithNumber("latitude", mcp.Description(latitudeDesc)),
	mcp.WithNumber("longitude", mcp.Description(longitudeDesc)),
	mcp.WithString("ayanamsa", mcp.Description(ayanamsaDesc)),
	mcp.WithString("house_system", mcp.Description("House system: placidus (default), equal, whole_sign")),
	mcp.WithBoolean("save", mcp.Description("Persist the chart and return its ID")),
)

var dignityToolDef = mcp.NewTool("graha_dignity",
	mcp.WithDescription("Score planetary dignity (0-100) in the birth chart: exaltation, moolatrikona, own sign, friendships, with retrograde/combustion/exact-degree modifiers."),
	mcp.WithString("birth_datetime", mcp.Required(), mcp.Description(birthTimeDesc)),
	mcp.WithNumber("latitude", mcp.Description(latitudeDesc)),
	mcp.WithNumber("longitude", mcp.Description(longitudeDesc)),
	mcp.WithString("ayanamsa", mcp.Description(ayanamsaDesc)),
	mcp.WithString("planet", mcp.Description("Limit to one graha by name (English or Sanskrit); omit to score all nine with a comparison")),
	mcp.WithBoolean("save", mcp.Description("Persist the evaluation and return its ID")),
)

var analyzeToolDef = mcp.NewTool("graha_analyze",
	mcp.WithDescription("Full reading: core numbers, sidereal chart, dignity of both ruling planets, and the support/harmony verdict. Persisted by default."),
	mcp.WithString("birth_datetime", mcp.Required(), mcp.Description(birthTimeDesc)),
	mcp.WithNumber("latitude", mcp.Description(latitudeDesc)),
	mcp.WithNumber("longitude", mcp.Description(longitudeDesc)),
	mcp.WithString("ayanamsa", mcp.Description(ayanamsaDesc)),
	mcp.WithBoolean("skip_sunrise_correction", mcp.Description("Disable the Vedic sunrise day-boundary correction")),
	mcp.WithBoolean("no_save", mcp.Description("Compute without persisting")),
)

var temporalToolDef = mcp.NewTool("graha_temporal",
	mcp.WithDescription("Generate daily numerology and dignity score series for all nine grahas over a date range. The run is persisted and can be fetched or exported later."),
	mcp.WithString("start_date", mcp.Required(), mcp.Description("Start date, YYYY-MM-DD, inclusive")),
	mcp.WithString("end_date", mcp.Required(), mcp.Description("End date, YYYY-MM-DD, inclusive")),
	mcp.WithNumber("latitude", mcp.Description(latitudeDesc)),
	mcp.WithNumber("longitude", mcp.Description(longitudeDesc)),
	mcp.WithString("ayanamsa", mcp.Description(ayanamsaDesc)),
	mcp.WithBoolean("no_save", mcp.Description("Compute without persisting")),
)

var historyToolDef = mcp.NewTool("graha_history",
	mcp.WithDescription("List stored readings newest-first, optionally filtered by kind."),
	mcp.WithString("kind", mcp.Description("Filter: numerology, chart, dignity, analysis, or temporal (runs); omit for all analyses")),
	mcp.WithNumber("limit", mcp.Description("Page size (default 20, max 100)")),
	mcp.WithNumber("offset", mcp.Description("Page offset")),
)

var fetchToolDef = mcp.NewTool("graha_fetch",
	mcp.WithDescription("Fetch a stored reading or temporal run by ID."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Record ULID")),
	mcp.WithString("planet", mcp.Description("For temporal runs: filter points to one graha")),
)

var deleteToolDef = mcp.NewTool("graha_delete",
	mcp.WithDescription("Delete a stored reading (soft) or temporal run (with its points) by ID."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Record ULID")),
)
