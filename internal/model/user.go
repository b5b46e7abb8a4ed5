package model

const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// Identity is the signed-in principal as returned in user_data. Owner-only
// fields stay empty for admins.
type Identity struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Phone          string    `json:"phone,omitempty"`
	RestaurantName string    `json:"restaurant_name,omitempty"`
	RestaurantUID  string    `json:"restaurant_uid,omitempty"`
	ApprovalStatus string    `json:"approval_status,omitempty"`
	CreatedAt      Timestamp `json:"created_at"`
}

type OwnerStatus struct {
	ApprovalStatus string `json:"approval_status"`
	RestaurantUID  string `json:"restaurant_uid"`
	RestaurantName string `json:"restaurant_name"`
	Message        string `json:"message"`
}

func (s OwnerStatus) FullyApproved() bool {
	return s.ApprovalStatus == "approved" && s.RestaurantUID != ""
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token    string   `json:"token"`
	UserData Identity `json:"user_data"`
	Status   string   `json:"status,omitempty"`
}
