package repository

import (
    "context"
    "database/sql"
    "strconv"

    "github.com/Pranai222/eventvenue-platform/internal/model"
)

// SettingsRepo reads and writes the key/value settings table that
// holds the conversion rate and the platform fees.  Reads are always
// live: pricing code calls into this repository at the moment of
// every computation, so an admin update takes effect immediately.
// There is deliberately no caching or snapshotting here.
type SettingsRepo struct {
    db *sql.DB
}

// NewSettingsRepo returns a new SettingsRepo bound to the given database.
func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// GetInt returns the integer value stored under key, or def when the
// key is absent or unparsable.
func (r *SettingsRepo) GetInt(ctx context.Context, key string, def int64) (int64, error) {
    const q = `SELECT setting_value FROM settings WHERE setting_key = ?`
    var raw string
    err := r.db.QueryRowContext(ctx, q, key).Scan(&raw)
    if err == sql.ErrNoRows {
        return def, nil
    }
    if err != nil {
        return 0, err
    }
    n, convErr := strconv.ParseInt(raw, 10, 64)
    if convErr != nil {
        return def, nil
    }
    return n, nil
}

// Set upserts a settings key.
func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
    const q = `INSERT INTO settings (setting_key, setting_value) VALUES (?, ?)
               ON DUPLICATE KEY UPDATE setting_value = VALUES(setting_value)`
    _, err := r.db.ExecContext(ctx, q, key, value)
    return err
}

// ConversionRate returns the current points-per-currency-unit rate.
func (r *SettingsRepo) ConversionRate(ctx context.Context) (int64, error) {
    return r.GetInt(ctx, model.SettingConversionRate, model.DefaultConversionRate)
}

// UserPlatformFee returns the fixed per-booking fee in points.
func (r *SettingsRepo) UserPlatformFee(ctx context.Context) (int64, error) {
    return r.GetInt(ctx, model.SettingUserPlatformFee, model.DefaultUserPlatformFee)
}

// PlatformFees returns all per-action fees in one struct for the
// admin settings endpoint.
func (r *SettingsRepo) PlatformFees(ctx context.Context) (*model.PlatformFees, error) {
    user, err := r.GetInt(ctx, model.SettingUserPlatformFee, model.DefaultUserPlatformFee)
    if err != nil {
        return nil, err
    }
    venue, err := r.GetInt(ctx, model.SettingVenueCreationFee, model.DefaultVenueCreationFee)
    if err != nil {
        return nil, err
    }
    eventQty, err := r.GetInt(ctx, model.SettingEventCreationQuantity, model.DefaultEventCreationQuantity)
    if err != nil {
        return nil, err
    }
    eventSeat, err := r.GetInt(ctx, model.SettingEventCreationSeat, model.DefaultEventCreationSeat)
    if err != nil {
        return nil, err
    }
    return &model.PlatformFees{
        UserBookingFee:        user,
        VenueCreationFee:      venue,
        EventQuantityFee:      eventQty,
        EventSeatSelectionFee: eventSeat,
    }, nil
}

// EventCreationFee returns the creation fee for the given booking
// type (seat-selection events cost more than quantity events).
func (r *SettingsRepo) EventCreationFee(ctx context.Context, bookingType string) (int64, error) {
    if bookingType == model.BookingTypeSeat {
        return r.GetInt(ctx, model.SettingEventCreationSeat, model.DefaultEventCreationSeat)
    }
    return r.GetInt(ctx, model.SettingEventCreationQuantity, model.DefaultEventCreationQuantity)
}
