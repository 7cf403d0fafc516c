package booking

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// CurrentFields are the snake_case keys the bot writes today.
type CurrentFields struct {
	ContactName  string `mapstructure:"contact_name"`
	CustomerName string `mapstructure:"customer_name"`
	Phone        string `mapstructure:"phone"`
	ServiceName  string `mapstructure:"service_name"`
	ServiceID    string `mapstructure:"service_id"`
	BarberName   string `mapstructure:"barber_name"`
	TimeSlot     string `mapstructure:"time_slot"`
	Date         any    `mapstructure:"date"`
	Source       string `mapstructure:"source"`
	Status       string `mapstructure:"status"`
	CreatedAt    any    `mapstructure:"created_at"`
	UpdatedAt    any    `mapstructure:"updated_at"`
}

// LegacyFields are the camelCase keys of documents written by older bot
// versions.
type LegacyFields struct {
	CustomerName  string `mapstructure:"customerName"`
	PhoneNumber   string `mapstructure:"phoneNumber"`
	Service       string `mapstructure:"service"`
	ServiceID     string `mapstructure:"serviceId"`
	Barber        string `mapstructure:"barber"`
	TimeSlot      string `mapstructure:"timeSlot"`
	BookingSource string `mapstructure:"bookingSource"`
	CreatedAt     any    `mapstructure:"createdAt"`
	UpdatedAt     any    `mapstructure:"updatedAt"`
}

// Record is a stored document split into both naming conventions. Raw maps
// stop here; everything downstream works with Booking.
type Record struct {
	ID      string
	Current CurrentFields
	Legacy  LegacyFields
}

// DecodeRecord reads both field sets out of data. Values of the wrong type
// for a text field become empty instead of failing the whole document.
func DecodeRecord(id string, data map[string]any) (Record, error) {
	rec := Record{ID: id}
	if len(data) == 0 {
		return rec, nil
	}

	if err := decode(data, &rec.Current); err != nil {
		return rec, err
	}
	if err := decode(data, &rec.Legacy); err != nil {
		return rec, err
	}
	return rec, nil
}

func decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       lenientString,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}

func lenientString(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || data == nil || from.Kind() == reflect.String {
		return data, nil
	}
	s, err := cast.ToStringE(data)
	if err != nil {
		return "", nil
	}
	return s, nil
}
