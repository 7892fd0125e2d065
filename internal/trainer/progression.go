package trainer

// Progression tracks the active week and which days of each week are done.
type Progression struct {
	CurrentWeek         int
	CompletedDaysByWeek map[int][]string
}

func NewProgression() Progression {
	return Progression{CurrentWeek: 1, CompletedDaysByWeek: make(map[int][]string)}
}

func (p *Progression) ensure() {
	if p.CurrentWeek <= 0 {
		p.CurrentWeek = 1
	}
	if p.CompletedDaysByWeek == nil {
		p.CompletedDaysByWeek = make(map[int][]string)
	}
}

func (p Progression) IsDayComplete(week int, dayName string) bool {
	return containsName(p.CompletedDaysByWeek[week], dayName)
}

// ToggleDay flips a day's completion. Un-completing never moves the week back.
// It reports the new completion state and whether the week advanced.
func (p *Progression) ToggleDay(week int, dayName string) (completed, advanced bool) {
	days := p.CompletedDaysByWeek[week]
	for i, d := range days {
		if d == dayName {
			p.CompletedDaysByWeek[week] = append(days[:i:i], days[i+1:]...)
			return false, false
		}
	}
	p.CompletedDaysByWeek[week] = append(days, dayName)
	return true, p.checkWeek(week)
}

// MarkDayComplete adds the day if absent and reports whether the week advanced.
func (p *Progression) MarkDayComplete(week int, dayName string) bool {
	if !p.IsDayComplete(week, dayName) {
		p.CompletedDaysByWeek[week] = append(p.CompletedDaysByWeek[week], dayName)
	}
	return p.checkWeek(week)
}

func (p *Progression) checkWeek(week int) bool {
	if len(p.CompletedDaysByWeek[week]) >= DaysPerWeek && p.CurrentWeek == week {
		p.CurrentWeek++
		return true
	}
	return false
}

// Reset starts the program over. History is not touched.
func (p *Progression) Reset() {
	p.CurrentWeek = 1
	p.CompletedDaysByWeek = make(map[int][]string)
}

// JumpToWeek sets the current week regardless of what is complete.
func (p *Progression) JumpToWeek(week int) {
	if week < 1 {
		week = 1
	}
	p.CurrentWeek = week
}

func (p Progression) Clone() Progression {
	c := Progression{CurrentWeek: p.CurrentWeek, CompletedDaysByWeek: make(map[int][]string, len(p.CompletedDaysByWeek))}
	for w, days := range p.CompletedDaysByWeek {
		c.CompletedDaysByWeek[w] = append([]string(nil), days...)
	}
	return c
}
