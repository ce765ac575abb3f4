package domain

import "time"

type Player struct {
	ID               int64     `json:"id"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	BirthDate        time.Time `json:"birthDate"`
	ExperienceMonths int       `json:"experienceMonths"`
	TeamID           *int64    `json:"teamId,omitempty"`
}

// PlayerWithTeam агрегат игрока вместе с командой-владельцем (может отсутствовать)
type PlayerWithTeam struct {
	Player
	Team *Team `json:"team"`
}

func NewPlayer(firstName, lastName string, birthDate time.Time, experienceMonths int, teamID *int64) *Player {
	return &Player{
		FirstName:        firstName,
		LastName:         lastName,
		BirthDate:        birthDate,
		ExperienceMonths: experienceMonths,
		TeamID:           teamID,
	}
}

// Age возвращает полное число лет на текущую дату
func (p *Player) Age() int {
	return p.AgeAt(time.Now())
}

func (p *Player) AgeAt(now time.Time) int {
	years := now.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

func (p *Player) Validate() error {
	if p.FirstName == "" {
		return ErrInvalidInput
	}
	if p.LastName == "" {
		return ErrInvalidInput
	}
	if p.BirthDate.IsZero() || !p.BirthDate.Before(time.Now()) {
		return ErrInvalidInput
	}
	if p.ExperienceMonths < 0 {
		return ErrInvalidInput
	}
	return nil
}
