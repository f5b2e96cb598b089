package ports

// Canonical frontend paths used by the route guards and the post-login
// routing policy.
const (
	PathLogin           = "/login"
	PathMemberArea      = "/member"
	PathAdminArea       = "/admin"
	PathCompleteProfile = "/member/profile/complete"
	PathVerifyMember    = "/verify-member"
)
