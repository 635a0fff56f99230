package domain

// Coupon statuses
const (
	CouponStatusActive   = "active"
	CouponStatusInactive = "inactive"
)

// License statuses
const (
	LicenseStatusAvailable = "available"
	LicenseStatusInUse     = "in_use"
	LicenseStatusInactive  = "inactive"
)

// License platforms
const (
	PlatformSteam     = "steam"
	PlatformBattleNet = "battle_net"
	PlatformOrigin    = "origin"
)

// User profiles
const (
	ProfileAdmin  = "admin"
	ProfileClient = "client"
)

// Product statuses
const (
	ProductStatusAvailable   = "available"
	ProductStatusUnavailable = "unavailable"
)

// Game modes
const (
	GameModePvP  = "pvp"
	GameModePvE  = "pve"
	GameModeBoth = "both"
)

// List exports for the enums endpoint and Inclusion rules.
var CouponStatuses = []string{
	CouponStatusActive,
	CouponStatusInactive,
}

var LicenseStatuses = []string{
	LicenseStatusAvailable,
	LicenseStatusInUse,
	LicenseStatusInactive,
}

var LicensePlatforms = []string{
	PlatformSteam,
	PlatformBattleNet,
	PlatformOrigin,
}

var UserProfiles = []string{
	ProfileAdmin,
	ProfileClient,
}

var ProductStatuses = []string{
	ProductStatusAvailable,
	ProductStatusUnavailable,
}

var GameModes = []string{
	GameModePvP,
	GameModePvE,
	GameModeBoth,
}

var ProductableKinds = []string{
	string(ProductableGame),
}
