package export_calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-VenueService/internal/domain"
)

const (
	productID = "-//SMC//VenueService//EN"
	uidDomain = "venue-service"

	// floatingFormat локальное время площадки без часового пояса
	floatingFormat = "20060102T150405"
)

var rruleWeekdays = [domain.DaysPerWeek]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

type calendarBuilder struct {
	cal   *ics.Calendar
	stamp time.Time
}

func newCalendarBuilder(venue *domain.Venue, stamp time.Time) *calendarBuilder {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(venue.Name)
	return &calendarBuilder{cal: cal, stamp: stamp.UTC()}
}

// addRequest добавляет одобренную заявку как одно событие
func (b *calendarBuilder) addRequest(req *domain.EventRequest) {
	event := b.cal.AddEvent(fmt.Sprintf("request-%d@%s", req.ID, uidDomain))
	event.SetDtStampTime(b.stamp)
	event.SetProperty(ics.ComponentPropertyDtStart, req.StartsAt().Format(floatingFormat))
	event.SetProperty(ics.ComponentPropertyDtEnd, req.EndsAt().Format(floatingFormat))
	event.SetStatus(ics.ObjectStatusConfirmed)

	summary := fmt.Sprintf("Event request #%d", req.ID)
	if req.Title != nil {
		summary = *req.Title
	}
	event.SetSummary(summary)
	if req.Notes != nil {
		event.SetDescription(*req.Notes)
	}
}

// addRecurringBlock добавляет повторяющуюся блокировку как еженедельное событие.
// Возвращает false, если в окне нет ни одного вхождения.
func (b *calendarBuilder) addRecurringBlock(block domain.BlockedSlot, from, to time.Time) (bool, error) {
	weekday := rruleWeekdays[block.Weekday()]
	first := from.Add(time.Duration(block.Hour) * time.Hour)
	last := to.Add(time.Duration(block.Hour) * time.Hour)

	window, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   first,
		Byweekday: []rrule.Weekday{weekday},
		Until:     last,
	})
	if err != nil {
		return false, fmt.Errorf("build rrule for block %s: %w", block.ID, err)
	}

	occurrences := window.Between(first, last, true)
	if len(occurrences) == 0 {
		return false, nil
	}

	// Локальное время без пояса допускает только COUNT вместо UTC UNTIL
	rule := rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{weekday},
		Count:     len(occurrences),
	}

	start := occurrences[0]
	event := b.cal.AddEvent(fmt.Sprintf("block-%s@%s", block.ID, uidDomain))
	event.SetDtStampTime(b.stamp)
	event.SetProperty(ics.ComponentPropertyDtStart, start.Format(floatingFormat))
	event.SetProperty(ics.ComponentPropertyDtEnd, start.Add(time.Hour).Format(floatingFormat))
	event.SetProperty(ics.ComponentPropertyRrule, rule.RRuleString())
	event.SetSummary(fmt.Sprintf("Blocked %02d:00-%02d:00", block.Hour, block.Hour+1))
	return true, nil
}

func (b *calendarBuilder) serialize() string {
	return b.cal.Serialize()
}
