package entity

import "time"

// Default balances granted to a new personnel record, in days per year.
const (
	DefaultAnnualLeave        = 25
	DefaultSickLeave          = 90
	DefaultCompassionateLeave = 7
	DefaultPaternityLeave     = 7
	DefaultMaternityLeave     = 98
)

// Personnel is one service member. Balances are day counters decremented
// when a request is approved; negative values are allowed and surface as
// over-limit signals on the dashboard.
type Personnel struct {
	ID                string `gorm:"primaryKey;size:32" json:"id"`
	Name              string `gorm:"size:255;not null;index" json:"name"`
	Rank              string `gorm:"size:100" json:"rank"`
	MilitaryID        string `gorm:"size:50;index" json:"military_id"`
	Platoon           string `gorm:"size:100" json:"platoon"`
	ContactNumber     string `gorm:"size:50" json:"contact_number"`
	ProfilePictureURL string `gorm:"size:500" json:"profile_picture_url"`

	AnnualLeaveBalance        int `gorm:"default:25" json:"annual_leave_balance"`
	SickLeaveBalance          int `gorm:"default:90" json:"sick_leave_balance"`
	CompassionateLeaveBalance int `gorm:"default:7" json:"compassionate_leave_balance"`
	PaternityLeaveBalance     int `gorm:"default:7" json:"paternity_leave_balance"`
	MaternityLeaveBalance     int `gorm:"default:98" json:"maternity_leave_balance"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Personnel) TableName() string {
	return "military_personnel"
}

// BalanceColumnByType maps a leave type to the balance column it draws
// from. Unmapped types do not touch any balance.
var BalanceColumnByType = map[string]string{
	"Cuti Tahunan":   "annual_leave_balance",
	"Cuti Sakit":     "sick_leave_balance",
	"Cuti Kecemasan": "compassionate_leave_balance",
	"Cuti Bapa":      "paternity_leave_balance",
	"Cuti Bersalin":  "maternity_leave_balance",
}
