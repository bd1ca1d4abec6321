package query

import (
	"fmt"
	"strconv"
)

func matchLongEquals(target, value string) (bool, error) {
	return compareLongs(target, value, func(t, v int64) bool { return t == v })
}

func matchLongGreater(target, value string) (bool, error) {
	return compareLongs(target, value, func(t, v int64) bool { return t > v })
}

func matchLongLess(target, value string) (bool, error) {
	return compareLongs(target, value, func(t, v int64) bool { return t < v })
}

func compareLongs(target, value string, cmp func(t, v int64) bool) (bool, error) {
	t, err := parseLong(target)
	if err != nil {
		return false, err
	}

	v, err := parseLong(value)
	if err != nil {
		return false, err
	}

	return cmp(t, v), nil
}

func parseLong(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}

	return n, nil
}
