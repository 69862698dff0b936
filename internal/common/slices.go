package common

// Reversed returns a reversed copy of the slice.
func Reversed[S ~[]E, E any](s S) S {
	out := make(S, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}

	return out
}

// IsPalindrome reports whether the slice reads the same in both directions.
func IsPalindrome[S ~[]E, E comparable](s S) bool {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		if s[i] != s[j] {
			return false
		}
	}

	return true
}
