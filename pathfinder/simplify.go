package pathfinder

// Simplify collapses each run of consecutive within-project names down to
// the element closest to the vulnerable terminal. A chain of within-project
// packages re-exports the same logical boundary; only the hop nearest the
// vulnerability matters for remediation.
func Simplify(path []string, withinProject map[string]bool) []string {
	simplified := []string{}
	buffered := ""

	for _, name := range path {
		if withinProject[name] {
			buffered = name
			continue
		}
		if buffered != "" {
			simplified = append(simplified, buffered)
			buffered = ""
		}
		simplified = append(simplified, name)
	}

	if buffered != "" {
		simplified = append(simplified, buffered)
	}

	return simplified
}
