package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/weekwise/internal/domain"
)

// unavailableFlag collects repeated --unavailable "Monday 12:00-13:00" values.
type unavailableFlag struct {
	hours *[]domain.UnavailableHour
}

var _ pflag.Value = (*unavailableFlag)(nil)

func (f *unavailableFlag) String() string {
	if f.hours == nil {
		return ""
	}
	parts := make([]string, len(*f.hours))
	for i, u := range *f.hours {
		parts[i] = u.String()
	}
	return strings.Join(parts, ", ")
}

func (f *unavailableFlag) Set(s string) error {
	u, err := parseUnavailable(s)
	if err != nil {
		return err
	}
	*f.hours = append(*f.hours, u)
	return nil
}

func (f *unavailableFlag) Type() string { return "unavailable" }

// parseUnavailable reads "<day> HH:mm-HH:mm". Day names may be abbreviated to
// three letters.
func parseUnavailable(s string) (domain.UnavailableHour, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return domain.UnavailableHour{}, fmt.Errorf("%w: want \"<day> HH:mm-HH:mm\", got %q", domain.ErrInvalidInput, s)
	}
	day, err := domain.ParseDayOfWeek(fields[0])
	if err != nil {
		return domain.UnavailableHour{}, err
	}
	start, end, ok := strings.Cut(fields[1], "-")
	if !ok {
		return domain.UnavailableHour{}, fmt.Errorf("%w: want HH:mm-HH:mm, got %q", domain.ErrInvalidInput, fields[1])
	}
	u := domain.UnavailableHour{DayOfWeek: day, StartTime: start, EndTime: end}
	if err := u.Validate(); err != nil {
		return domain.UnavailableHour{}, err
	}
	return u, nil
}
