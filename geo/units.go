package geo

const (
	MetersPerKilometer = 1000.0
	MetersPerMile      = 1609.344
	FeetPerMile        = 5280.0
	MilesPerKilometer  = MetersPerKilometer / MetersPerMile
)

// Miles converts meters to statute miles.
func Miles(meters float64) float64 {
	return meters / MetersPerMile
}

// Kilometers converts meters to kilometers.
func Kilometers(meters float64) float64 {
	return meters / MetersPerKilometer
}
