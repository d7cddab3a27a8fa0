package math

// MinInt returns the smaller of a and b
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// MaxInt returns the larger of a and b
func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// CeilDiv returns ceil(a / b) for positive b
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}
