package analytics

import "strings"

// Rank categories.
const (
	RankOfficer = "Pegawai"
	RankLLP     = "LLP"
)

// Officer rank prefixes: general, colonel, major, captain, brigadier and
// the lieutenant family.
var officerPrefixes = []string{
	"JEN", "JENERAL",
	"KOL", "KOLONEL",
	"MEJ", "MEJAR",
	"KAPT", "KAPTEN",
	"BRIG",
	"LT", "LEFTENAN",
}

// RankCategory classifies a free-text rank string as Pegawai (officer) or
// LLP (enlisted/warrant). The match is on the prefix only: "Pegawai Waran"
// contains no officer prefix and stays LLP.
func RankCategory(rank string) string {
	r := strings.ToUpper(strings.TrimSpace(rank))
	for _, p := range officerPrefixes {
		if strings.HasPrefix(r, p) {
			return RankOfficer
		}
	}
	return RankLLP
}
