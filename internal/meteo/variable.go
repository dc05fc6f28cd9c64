package meteo

// Variable identifies a measured quantity independent of the height or depth
// it is sampled at.
type Variable string

const (
	VarTemperature        Variable = "temperature"
	VarRelativeHumidity   Variable = "relative_humidity"
	VarDewPoint           Variable = "dew_point"
	VarSurfacePressure    Variable = "surface_pressure"
	VarWindSpeed          Variable = "wind_speed"
	VarSoilTemperature    Variable = "soil_temperature"
	VarPrecipitation      Variable = "precipitation"
	VarShortwaveRadiation Variable = "shortwave_radiation"
)

// Kind binds a Variable to the altitude/depth it is measured at and to the
// API parameter that names the combination. Altitude is meters above ground
// for air variables and centimeters below ground for soil variables; 0 means
// surface level with no tag.
type Kind struct {
	Param    string
	Variable Variable
	Altitude int
}

// Kinds is the closed, ordered set of hourly variables every forecast request
// asks for. Declaration order is the request order and doubles as the
// positional index used by FindKind, so the two must never drift apart.
var Kinds = []Kind{
	{Param: "temperature_2m", Variable: VarTemperature, Altitude: 2},
	{Param: "relative_humidity_2m", Variable: VarRelativeHumidity, Altitude: 2},
	{Param: "dew_point_2m", Variable: VarDewPoint, Altitude: 2},
	{Param: "surface_pressure", Variable: VarSurfacePressure, Altitude: 0},
	{Param: "wind_speed_10m", Variable: VarWindSpeed, Altitude: 10},
	{Param: "soil_temperature_54cm", Variable: VarSoilTemperature, Altitude: 54},
	{Param: "precipitation", Variable: VarPrecipitation, Altitude: 0},
	{Param: "shortwave_radiation", Variable: VarShortwaveRadiation, Altitude: 0},
}

// Named positions into Kinds for callers that address one variable directly.
var (
	TempAir        = Kinds[0]
	RelHum         = Kinds[1]
	DewPoint       = Kinds[2]
	Pressure       = Kinds[3]
	WindSpeed      = Kinds[4]
	TempSoil       = Kinds[5]
	Precipitation  = Kinds[6]
	SolarRadiation = Kinds[7]
)

// CurrentKinds is the subset requested as instantaneous values.
var CurrentKinds = []Kind{TempAir, RelHum}

// KindIndex returns the declaration position of the kind matching the
// variable and altitude/depth tag, or -1 if no such kind is declared.
func KindIndex(v Variable, altitude int) int {
	for i, k := range Kinds {
		if k.Variable == v && k.Altitude == altitude {
			return i
		}
	}
	return -1
}
