package maturity

// ExtractLevel parses a raw grade such as "N3 - Défini". Only an "N" at
// position 0 directly followed by a digit is recognized.
func ExtractLevel(raw string) (int, bool) {
	if len(raw) < 2 || raw[0] != 'N' {
		return 0, false
	}
	d := raw[1]
	if d < '0' || d > '9' {
		return 0, false
	}
	return int(d - '0'), true
}

// ExtractLevelPtr is ExtractLevel for optional inputs; nil means absent.
func ExtractLevelPtr(raw *string) *int {
	if raw == nil {
		return nil
	}
	lvl, ok := ExtractLevel(*raw)
	if !ok {
		return nil
	}
	return &lvl
}
