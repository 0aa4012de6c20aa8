package reclass

// Preset tables carrying the standard model parameters. Callers that need
// different breakpoints build their own Table or load one from CSV.

// SlopeTable classes slope in degrees. Steeper terrain drives faster fire
// spread. The top range closes at 90 because slope is clamped there.
func SlopeTable() Table {
	return Table{
		Name: "slope",
		Ranges: []Range{
			{Lower: 0, Upper: 5, Class: ClassVeryLow},
			{Lower: 5, Upper: 15, Class: ClassLow},
			{Lower: 15, Upper: 25, Class: ClassModerate},
			{Lower: 25, Upper: 35, Class: ClassHigh},
			{Lower: 35, Upper: 90, Class: ClassVeryHigh},
		},
		CloseLast: true,
	}
}

// AspectTable classes compass bearings in degrees clockwise from north.
// South-facing terrain dries fastest and carries the highest risk; flat
// cells class as low risk alongside north.
func AspectTable() Table {
	return Table{
		Name: "aspect",
		Ranges: []Range{
			{Lower: 0, Upper: 45, Class: ClassLow},
			{Lower: 45, Upper: 135, Class: ClassModerate},
			{Lower: 135, Upper: 225, Class: ClassVeryHigh},
			{Lower: 225, Upper: 315, Class: ClassHigh},
			{Lower: 315, Upper: 360, Class: ClassLow},
		},
		FlatClass: ClassLow,
	}
}

// VegetationTable classes a fuel-load index on a 0..100 scale: barren and
// urban ground at the bottom, grass, shrub, then heavy forest fuels at the
// top. The index ceiling is included like slope's.
func VegetationTable() Table {
	return Table{
		Name: "vegetation",
		Ranges: []Range{
			{Lower: 0, Upper: 10, Class: ClassVeryLow},
			{Lower: 10, Upper: 40, Class: ClassModerate},
			{Lower: 40, Upper: 70, Class: ClassHigh},
			{Lower: 70, Upper: 100, Class: ClassVeryHigh},
		},
		CloseLast: true,
	}
}
