package analytics

import "testing"

func TestIsOverseas(t *testing.T) {
	cases := []struct {
		leaveType    string
		leaveAddress string
		want         bool
	}{
		{"Cuti Tahunan", "Jeddah, Saudi Arabia", true},
		{"Cuti Tahunan", "Kuala Lumpur", false},
		{"Cuti Haji", "", true},
		{"Cuti Tahunan", "No 12, Jalan Merdeka, Ipoh", false},
		{"Cuti Tahunan", "SINGAPURA", true},
		{"Cuti Tahunan", "Lawatan ke London", true},
		{"", "", false},
	}

	for _, tc := range cases {
		if got := IsOverseas(tc.leaveType, tc.leaveAddress); got != tc.want {
			t.Errorf("IsOverseas(%q, %q) = %v, want %v", tc.leaveType, tc.leaveAddress, got, tc.want)
		}
	}
}

func TestIsSickLeave(t *testing.T) {
	if !IsSickLeave("Cuti Sakit") {
		t.Error("expected Cuti Sakit to be sick leave")
	}
	if !IsSickLeave("cuti SAKIT lanjutan") {
		t.Error("substring match should be case-insensitive")
	}
	if IsSickLeave("Cuti Tahunan") {
		t.Error("Cuti Tahunan is not sick leave")
	}
}

func TestIsOfficialDuty(t *testing.T) {
	if !IsOfficialDuty("Cuti Tanpa Rekod") {
		t.Error("expected Cuti Tanpa Rekod to be official duty")
	}
	if !IsOfficialDuty("Kursus Kepimpinan") {
		t.Error("expected Kursus to be official duty")
	}
	if IsOfficialDuty("Cuti Tahunan") {
		t.Error("Cuti Tahunan is not official duty")
	}
}
