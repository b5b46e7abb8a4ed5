package model

import (
	"errors"
	"regexp"
	"strings"
)

const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
	// login-only status: approved, restaurant not yet assigned
	ApprovalNoUID = "approved_no_uid"
)

// BankDetails are optional at signup and editable from the profile.
type BankDetails struct {
	AccountNumber string `json:"bank_account_number,omitempty"`
	IFSCCode      string `json:"bank_ifsc_code,omitempty"`
	HolderName    string `json:"bank_account_holder_name,omitempty"`
	UPIID         string `json:"upi_id,omitempty"`
}

type SignupRequest struct {
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Password          string `json:"password"`
	RestaurantName    string `json:"restaurant_name"`
	RestaurantAddress string `json:"restaurant_address"`
	RestaurantPhone   string `json:"restaurant_phone"`
	BankDetails
}

type SignupResult struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe  = regexp.MustCompile(`^\d{10}$`)
	phoneSep = strings.NewReplacer(" ", "", "-", "", "+", "")
)

// ValidPhone accepts ten digits, optionally behind a 91 country code and
// with spaces, dashes or a plus sign.
func ValidPhone(p string) bool {
	p = strings.TrimPrefix(phoneSep.Replace(p), "91")
	return phoneRe.MatchString(p)
}

// Validate checks the signup form in display order and returns the first
// problem as an owner-facing message.
func (r SignupRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.FullName) == "":
		return errors.New("Full name is required")
	case !emailRe.MatchString(r.Email):
		return errors.New("Please enter a valid email address")
	case !ValidPhone(r.Phone):
		return errors.New("Please enter a valid 10-digit phone number")
	case len(r.Password) < 8:
		return errors.New("Password must be at least 8 characters")
	case strings.TrimSpace(r.RestaurantName) == "":
		return errors.New("Restaurant name is required")
	case strings.TrimSpace(r.RestaurantAddress) == "":
		return errors.New("Restaurant address is required")
	case !ValidPhone(r.RestaurantPhone):
		return errors.New("Please enter a valid restaurant phone number")
	}
	return nil
}

type OwnerProfile struct {
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	RestaurantName    string `json:"restaurant_name"`
	RestaurantAddress string `json:"restaurant_address"`
	RestaurantPhone   string `json:"restaurant_phone"`
	RestaurantEmail   string `json:"restaurant_email,omitempty"`
	BankDetails
}

// Owner is a restaurant owner as the admin sees it.
type Owner struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	FullName          string    `json:"full_name"`
	Phone             string    `json:"phone"`
	RestaurantName    string    `json:"restaurant_name"`
	RestaurantAddress string    `json:"restaurant_address"`
	RestaurantPhone   string    `json:"restaurant_phone"`
	RestaurantEmail   string    `json:"restaurant_email,omitempty"`
	RestaurantUID     string    `json:"restaurant_uid,omitempty"`
	ApprovalStatus    string    `json:"approval_status"`
	CreatedAt         Timestamp `json:"created_at"`
	ApprovedAt        Timestamp `json:"approved_at"`
	ApprovedBy        string    `json:"approved_by,omitempty"`
}

type Restaurant struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// ActionResult is the platform's answer to approve, reject and update calls.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
