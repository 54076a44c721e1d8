// Package estimation implements the life-cycle assessment estimate for aluminium and copper production.
//
// A Calculator maps a validated Input and an immutable set of Factors to a Result holding CO2 emissions,
// by-product generation, circularity score, recycling cost, compliance flags and recommendations.
// The figures are produced by a fixed sequence of Steps; later steps read what earlier ones wrote.
// Calculators hold no mutable state and can be shared between goroutines.
package estimation
