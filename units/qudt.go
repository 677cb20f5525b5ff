package units

// qudtDefinitions are the units known by the default registry
var qudtDefinitions = []Definition{
	{IRI: DIMENSIONLESS, Symbol: "1"},
	{IRI: QUDT_UNIT_NAMESPACE + "M", Symbol: "m"},
	{IRI: QUDT_UNIT_NAMESPACE + "SEC", Symbol: "s"},
	{IRI: QUDT_UNIT_NAMESPACE + "KiloGM", Symbol: "kg"},
	{IRI: QUDT_UNIT_NAMESPACE + "GM", Symbol: "g"},
	{IRI: QUDT_UNIT_NAMESPACE + "K", Symbol: "K"},
	{IRI: QUDT_UNIT_NAMESPACE + "A", Symbol: "A"},
	{IRI: QUDT_UNIT_NAMESPACE + "MOL", Symbol: "mol"},
	{IRI: QUDT_UNIT_NAMESPACE + "CD", Symbol: "cd"},
	{IRI: QUDT_UNIT_NAMESPACE + "PERCENT", Symbol: "percent"},
	// lengths, surfaces, volumes
	{IRI: QUDT_UNIT_NAMESPACE + "KiloM", Symbol: "km"},
	{IRI: QUDT_UNIT_NAMESPACE + "CentiM", Symbol: "cm"},
	{IRI: QUDT_UNIT_NAMESPACE + "MilliM", Symbol: "mm"},
	{IRI: QUDT_UNIT_NAMESPACE + "MicroM", Symbol: "um"},
	{IRI: QUDT_UNIT_NAMESPACE + "M2", Symbol: "m**2"},
	{IRI: QUDT_UNIT_NAMESPACE + "M3", Symbol: "m**3"},
	{IRI: QUDT_UNIT_NAMESPACE + "PER-M", Symbol: "1/m"},
	{IRI: QUDT_UNIT_NAMESPACE + "PER-M2", Symbol: "1/m**2"},
	{IRI: QUDT_UNIT_NAMESPACE + "PER-M3", Symbol: "1/m**3"},
	// time
	{IRI: QUDT_UNIT_NAMESPACE + "MilliSEC", Symbol: "ms"},
	{IRI: QUDT_UNIT_NAMESPACE + "MIN", Symbol: "min"},
	{IRI: QUDT_UNIT_NAMESPACE + "HR", Symbol: "h"},
	{IRI: QUDT_UNIT_NAMESPACE + "DAY", Symbol: "day"},
	{IRI: QUDT_UNIT_NAMESPACE + "PER-SEC", Symbol: "1/s"},
	{IRI: QUDT_UNIT_NAMESPACE + "PER-SEC2", Symbol: "1/s**2"},
	{IRI: QUDT_UNIT_NAMESPACE + "HZ", Symbol: "Hz"},
	// kinematics
	{IRI: QUDT_UNIT_NAMESPACE + "M-PER-SEC", Symbol: "m/s"},
	{IRI: QUDT_UNIT_NAMESPACE + "M-PER-SEC2", Symbol: "m/s**2"},
	{IRI: QUDT_UNIT_NAMESPACE + "M2-PER-SEC", Symbol: "m**2/s"},
	{IRI: QUDT_UNIT_NAMESPACE + "M2-PER-SEC2", Symbol: "m**2/s**2"},
	{IRI: QUDT_UNIT_NAMESPACE + "M2-PER-SEC3", Symbol: "m**2/s**3"},
	{IRI: QUDT_UNIT_NAMESPACE + "M3-PER-SEC", Symbol: "m**3/s"},
	{IRI: QUDT_UNIT_NAMESPACE + "M3-PER-SEC2", Symbol: "m**3/s**2"},
	{IRI: QUDT_UNIT_NAMESPACE + "KiloM-PER-HR", Symbol: "km/h"},
	// mass
	{IRI: QUDT_UNIT_NAMESPACE + "KiloGM-PER-M3", Symbol: "kg/m**3"},
	{IRI: QUDT_UNIT_NAMESPACE + "KiloGM-PER-M2", Symbol: "kg/m**2"},
	{IRI: QUDT_UNIT_NAMESPACE + "KiloGM-PER-SEC", Symbol: "kg/s"},
	{IRI: QUDT_UNIT_NAMESPACE + "KiloGM-PER-M2-SEC", Symbol: "kg/m**2/s"},
	{IRI: QUDT_UNIT_NAMESPACE + "M3-PER-KiloGM", Symbol: "m**3/kg"},
	{IRI: QUDT_UNIT_NAMESPACE + "GM-PER-KiloGM", Symbol: "g/kg"},
	// mechanics
	{IRI: QUDT_UNIT_NAMESPACE + "N", Symbol: "N"},
	{IRI: QUDT_UNIT_NAMESPACE + "PA", Symbol: "Pa"},
	{IRI: QUDT_UNIT_NAMESPACE + "N-PER-M2", Symbol: "N/m**2"},
	{IRI: QUDT_UNIT_NAMESPACE + "HectoPA", Symbol: "hPa"},
	{IRI: QUDT_UNIT_NAMESPACE + "KiloPA", Symbol: "kPa"},
	{IRI: QUDT_UNIT_NAMESPACE + "BAR", Symbol: "bar"},
	{IRI: QUDT_UNIT_NAMESPACE + "PA-PER-M", Symbol: "Pa/m"},
	{IRI: QUDT_UNIT_NAMESPACE + "PA-PER-SEC", Symbol: "Pa/s"},
	{IRI: QUDT_UNIT_NAMESPACE + "PA-SEC", Symbol: "Pa*s"},
	{IRI: QUDT_UNIT_NAMESPACE + "J", Symbol: "J"},
	{IRI: QUDT_UNIT_NAMESPACE + "N-M", Symbol: "N*m"},
	{IRI: QUDT_UNIT_NAMESPACE + "W", Symbol: "W"},
	{IRI: QUDT_UNIT_NAMESPACE + "W-PER-M2", Symbol: "W/m**2"},
	{IRI: QUDT_UNIT_NAMESPACE + "W-PER-M2-SR", Symbol: "W/m**2/sr"},
	{IRI: QUDT_UNIT_NAMESPACE + "W-PER-SR", Symbol: "W/sr"},
	{IRI: QUDT_UNIT_NAMESPACE + "J-PER-KiloGM", Symbol: "J/kg"},
	{IRI: QUDT_UNIT_NAMESPACE + "J-PER-KiloGM-K", Symbol: "J/kg/K"},
	{IRI: QUDT_UNIT_NAMESPACE + "J-PER-M3", Symbol: "J/m**3"},
	{IRI: QUDT_UNIT_NAMESPACE + "KiloGM-M-PER-SEC", Symbol: "kg*m/s"},
	// thermal
	{IRI: QUDT_UNIT_NAMESPACE + "K-PER-M", Symbol: "K/m"},
	{IRI: QUDT_UNIT_NAMESPACE + "K-PER-SEC", Symbol: "K/s"},
	{IRI: QUDT_UNIT_NAMESPACE + "W-PER-M-K", Symbol: "W/m/K"},
	{IRI: QUDT_UNIT_NAMESPACE + "K-M-PER-SEC", Symbol: "K*m/s"},
	// electromagnetism
	{IRI: QUDT_UNIT_NAMESPACE + "C", Symbol: "C"},
	{IRI: QUDT_UNIT_NAMESPACE + "V", Symbol: "V"},
	{IRI: QUDT_UNIT_NAMESPACE + "OHM", Symbol: "ohm"},
	{IRI: QUDT_UNIT_NAMESPACE + "A-PER-M2", Symbol: "A/m**2"},
	{IRI: QUDT_UNIT_NAMESPACE + "V-PER-M", Symbol: "V/m"},
	// angles
	{IRI: QUDT_UNIT_NAMESPACE + "RAD", Symbol: "rad"},
	{IRI: QUDT_UNIT_NAMESPACE + "SR", Symbol: "sr"},
	{IRI: QUDT_UNIT_NAMESPACE + "RAD-PER-SEC", Symbol: "rad/s"},
	{IRI: QUDT_UNIT_NAMESPACE + "RAD-PER-SEC2", Symbol: "rad/s**2"},
	// amount of substance
	{IRI: QUDT_UNIT_NAMESPACE + "MOL-PER-M3", Symbol: "mol/m**3"},
	{IRI: QUDT_UNIT_NAMESPACE + "MOL-PER-KiloGM", Symbol: "mol/kg"},
}
