package model

// pointsPerMM converts millimetres to PDF points (1 pt = 1/72 inch).
const pointsPerMM = 72.0 / 25.4

// MMToPt converts a length in millimetres to points.
func MMToPt(mm float64) float64 {
	return mm * pointsPerMM
}

// PtToMM converts a length in points to millimetres.
func PtToMM(pt float64) float64 {
	return pt / pointsPerMM
}
