package series

// ToggleHidden flips label in the hidden list and returns the new list.
// The input slice is left untouched.
func ToggleHidden(hidden []string, label string) []string {
	out := make([]string, 0, len(hidden)+1)
	found := false
	for _, l := range hidden {
		if l == label {
			found = true
			continue
		}
		out = append(out, l)
	}
	if !found {
		out = append(out, label)
	}
	return out
}
