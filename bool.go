package valfmt

// formatBool backs Optional[bool] only; plain bool has no registered
// formatter. Specs: "" or t (true/false), T (True/False), 1 (1/0).
func formatBool(v bool, dst []byte, spec FormatSpec) (int, error) {
	var s string
	switch spec {
	case "", "t":
		s = "false"
		if v {
			s = "true"
		}
	case "T":
		s = "False"
		if v {
			s = "True"
		}
	case "1":
		s = "0"
		if v {
			s = "1"
		}
	default:
		return 0, ErrInvalidSpec
	}
	return writeText(dst, s)
}
