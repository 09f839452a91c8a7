package entity

import "time"

// Leave request lifecycle states. Pending is the initial state; Approved
// and Rejected may be swapped by an administrator; Cancelled is terminal.
const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusCancelled = "Cancelled"

	// Legacy value written by an older submission form, treated as Approved
	// when computing per-person usage.
	StatusLegacyApproved = "Lulus"
)

// Defaults applied when a submission omits fields.
const (
	DefaultLeaveType = "Lain-lain"
	DefaultUserRank  = "LLP"
	DefaultUserName  = "Tanpa Nama"
	DefaultPlatoon   = "-"
)

// StatusLabels maps lifecycle states to the Malay labels shown on the
// dashboard and written into audit details.
var StatusLabels = map[string]string{
	StatusPending:   "Menunggu",
	StatusApproved:  "Diluluskan",
	StatusRejected:  "Ditolak",
	StatusCancelled: "Dibatalkan",
}

// LeaveRequest is one leave application. Personnel fields are denormalized
// at submission time; no referential integrity is enforced against the
// personnel table.
type LeaveRequest struct {
	ID          string `gorm:"primaryKey;size:32" json:"id"`
	UserID      string `gorm:"size:32;index" json:"user_id"`
	UserName    string `gorm:"size:255;not null" json:"user_name"`
	UserRank    string `gorm:"size:100" json:"user_rank"`
	UserPlatoon string `gorm:"size:100" json:"user_platoon"`

	LeaveType    string    `gorm:"size:100;index" json:"leave_type"`
	LeaveAddress string    `gorm:"size:500" json:"leave_address"`
	StartDate    time.Time `gorm:"not null;index" json:"start_date"`
	EndDate      time.Time `gorm:"not null;index" json:"end_date"`

	Status string `gorm:"size:20;not null;default:'Pending';index" json:"status"`

	Purpose            string `gorm:"size:500" json:"purpose"`
	ContactNumber      string `gorm:"size:50" json:"contact_number"`
	ReplacementOfficer string `gorm:"size:255" json:"replacement_officer"`
	SpouseName         string `gorm:"size:255" json:"spouse_name"`
	ChildrenNames      string `gorm:"size:500" json:"children_names"`
	AttachmentKey      string `gorm:"size:500" json:"attachment_key"`

	Remark     string     `gorm:"size:500" json:"remark"`
	ResolvedAt *time.Time `json:"resolved_at"`
	ResolvedBy string     `gorm:"size:255" json:"resolved_by"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// ApplyDefaults fills the fields a submission may leave empty.
func (r *LeaveRequest) ApplyDefaults() {
	if r.LeaveType == "" {
		r.LeaveType = DefaultLeaveType
	}
	if r.UserRank == "" {
		r.UserRank = DefaultUserRank
	}
	if r.UserName == "" {
		r.UserName = DefaultUserName
	}
	if r.UserPlatoon == "" {
		r.UserPlatoon = DefaultPlatoon
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
}

// IsApproved reports whether the request counts as approved, including the
// legacy status value.
func (r *LeaveRequest) IsApproved() bool {
	return r.Status == StatusApproved || r.Status == StatusLegacyApproved
}
