// pkg/util/util_test.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"testing"
)

func TestSelect(t *testing.T) {
	if Select(true, 1, 2) != 1 || Select(false, 1, 2) != 2 {
		t.Errorf("Select is broken")
	}
}

func TestSortedMapKeys(t *testing.T) {
	m := map[string]int{"banana": 1, "apple": 2, "cherry": 3}
	keys := SortedMapKeys(m)
	if len(keys) != 3 || keys[0] != "apple" || keys[1] != "banana" || keys[2] != "cherry" {
		t.Errorf("got %v", keys)
	}
}

func TestFilterSlice(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}
	even := FilterSlice(s, func(v int) bool { return v%2 == 0 })
	if len(even) != 2 || even[0] != 2 || even[1] != 4 {
		t.Errorf("got %v", even)
	}
	// Original is untouched.
	if len(s) != 5 {
		t.Errorf("input slice modified: %v", s)
	}
}

func TestMapSlice(t *testing.T) {
	s := []int{1, 2, 3}
	doubled := MapSlice(s, func(v int) int { return 2 * v })
	if len(doubled) != 3 || doubled[0] != 2 || doubled[1] != 4 || doubled[2] != 6 {
		t.Errorf("got %v", doubled)
	}
}

func TestReduceSlice(t *testing.T) {
	s := []int{1, 2, 3, 4}
	sum := ReduceSlice(s, func(v int, r int) int { return v + r }, 0)
	if sum != 10 {
		t.Errorf("sum = %d, expected 10", sum)
	}
}

func TestDeleteSliceElement(t *testing.T) {
	s := []int{10, 20, 30, 40}
	s = DeleteSliceElement(s, 1)
	if len(s) != 3 || s[0] != 10 || s[1] != 30 || s[2] != 40 {
		t.Errorf("got %v", s)
	}
}
