package models

import "slices"

// ToggleLike adds username to likes when absent and removes it when present.
// It returns the new set and whether username ends up liking.
func ToggleLike(likes []string, username string) ([]string, bool) {
	if i := slices.Index(likes, username); i >= 0 {
		return slices.Delete(slices.Clone(likes), i, i+1), false
	}
	out := make([]string, 0, len(likes)+1)
	out = append(out, likes...)
	return append(out, username), true
}
