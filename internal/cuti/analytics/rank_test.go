package analytics

import "testing"

func TestRankCategory(t *testing.T) {
	cases := []struct {
		rank string
		want string
	}{
		{"Mejar", RankOfficer},
		{"Leftenan Muda", RankOfficer},
		{"Kapten", RankOfficer},
		{"  kolonel  ", RankOfficer},
		{"Brig Jen", RankOfficer},
		{"Koperal Udara", RankLLP},
		{"Sarjan", RankLLP},
		{"LLP", RankLLP},
		{"", RankLLP},
		// Warrant officers contain the word "Pegawai" but must not match
		// any officer prefix.
		{"Pegawai Waran", RankLLP},
	}

	for _, tc := range cases {
		if got := RankCategory(tc.rank); got != tc.want {
			t.Errorf("RankCategory(%q) = %q, want %q", tc.rank, got, tc.want)
		}
	}
}
