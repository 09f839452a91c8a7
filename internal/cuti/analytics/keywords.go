package analytics

import "strings"

// overseasKeywords flag cross-border leave by substring match against the
// leave type and address. Best-effort heuristic; false positives from
// larger unrelated words are accepted.
var overseasKeywords = []string{
	"luar negara", "overseas",
	"singapore", "singapura",
	"thailand", "siam",
	"indonesia", "jakarta", "bali",
	"brunei",
	"vietnam", "hanoi", "ho chi minh",
	"myanmar", "cambodia", "laos",
	"philip", "manila",
	"china", "beijing", "shanghai", "hong kong", "taiwan",
	"japan", "jepun", "tokyo", "osaka",
	"korea", "seoul",
	"australia", "sydney", "melbourne", "perth",
	"new zealand",
	"uk", "united kingdom", "london", "manchester",
	"europe", "paris", "germany",
	"usa", "america",
	"mekah", "madinah", "jeddah", "saudi", "arab", "haji", "umrah",
	"turkey", "turkiye", "istanbul",
	"qatar", "doha", "dubai", "uae",
}

// IsOverseas reports whether the leave type or address mentions any
// overseas keyword.
func IsOverseas(leaveType, leaveAddress string) bool {
	haystack := strings.ToLower(leaveType + " " + leaveAddress)
	for _, kw := range overseasKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// IsSickLeave reports whether the leave type mentions sick leave.
func IsSickLeave(leaveType string) bool {
	return strings.Contains(strings.ToLower(leaveType), "sakit")
}

// IsOfficialDuty reports whether the leave type is off-record leave or a
// course assignment.
func IsOfficialDuty(leaveType string) bool {
	t := strings.ToLower(leaveType)
	return strings.Contains(t, "tanpa rekod") || strings.Contains(t, "kursus")
}
