package update

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

// clamp keeps i inside [0, n); it returns 0 for empty ranges.
func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}
