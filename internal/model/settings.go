package model

// Setting keys known to the platform.  Values are stored as strings
// in the settings table and parsed on read; unset keys fall back to
// the defaults below.  Settings are read live at the moment of every
// pricing calculation with no snapshotting, so an admin change takes
// effect immediately for all subsequent computations.
const (
    SettingConversionRate        = "conversion_rate"
    SettingUserPlatformFee       = "user_platform_fee_points"
    SettingVenueCreationFee      = "venue_creation_points"
    SettingEventCreationQuantity = "event_creation_points_quantity"
    SettingEventCreationSeat     = "event_creation_points_seat"
)

// Defaults applied when a setting key is absent or unparsable.
const (
    DefaultConversionRate        = 1
    DefaultUserPlatformFee       = 2
    DefaultVenueCreationFee      = 10
    DefaultEventCreationQuantity = 10
    DefaultEventCreationSeat     = 20
)

// PlatformFees groups the per-action point fees for admin reads and
// updates.
type PlatformFees struct {
    UserBookingFee       int64 `json:"user_platform_fee_points"`
    VenueCreationFee     int64 `json:"venue_creation_points"`
    EventQuantityFee     int64 `json:"event_creation_points_quantity"`
    EventSeatSelectionFee int64 `json:"event_creation_points_seat"`
}
