// Package models defines the catalog's wire shapes: admin inputs accepted by
// create and update endpoints, and the read projections returned by every
// endpoint.
//
// Each admin input knows how to validate itself beyond its struct tags
// (Check), copy itself onto a stored row (Apply) and tell whether that would
// change the row (Differs).
package models

import (
	"github.com/mantonx/filmadmin/internal/database"
	"github.com/mantonx/filmadmin/internal/validation"
)

// MsgCharacterNameNotAllowed is reported when a non-actor has a character name
const MsgCharacterNameNotAllowed = "Must be null when role is not Actor."

// =============================================================================
// MOVIE
// =============================================================================

// AdminMovie is the create/update input for a movie. ReleaseDate is text and
// is parsed with the configured date layouts.
type AdminMovie struct {
	ID          uint   `json:"id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Length      int    `json:"length" validate:"gt=0"`
	ReleaseDate string `json:"releaseDate"`
	LanguageID  uint   `json:"languageID" validate:"required"`
}

func (in AdminMovie) Check(v *validation.Validator, errs validation.Errors) {
	v.Date(errs, "ReleaseDate", in.ReleaseDate)
}

func (in AdminMovie) Apply(v *validation.Validator, m *database.Movie) {
	releaseDate, _ := v.ParseDate(in.ReleaseDate)
	m.Title = in.Title
	m.Description = in.Description
	m.Length = in.Length
	m.ReleaseDate = releaseDate
	m.LanguageID = in.LanguageID
}

func (in AdminMovie) Differs(v *validation.Validator, m *database.Movie) bool {
	releaseDate, _ := v.ParseDate(in.ReleaseDate)
	return in.Title != m.Title ||
		in.Description != m.Description ||
		in.Length != m.Length ||
		!releaseDate.Equal(m.ReleaseDate) ||
		in.LanguageID != m.LanguageID
}

// =============================================================================
// PERSON
// =============================================================================

// AdminPerson is the create/update input for a person
type AdminPerson struct {
	ID          uint   `json:"id"`
	BirthDate   string `json:"birthDate"`
	BirthPlace  string `json:"birthPlace" validate:"required"`
	Description string `json:"description" validate:"required"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
}

func (in AdminPerson) Check(v *validation.Validator, errs validation.Errors) {
	v.Date(errs, "BirthDate", in.BirthDate)
}

func (in AdminPerson) Apply(v *validation.Validator, p *database.Person) {
	birthDate, _ := v.ParseDate(in.BirthDate)
	p.BirthDate = birthDate
	p.BirthPlace = in.BirthPlace
	p.Description = in.Description
	p.FirstName = in.FirstName
	p.LastName = in.LastName
}

func (in AdminPerson) Differs(v *validation.Validator, p *database.Person) bool {
	birthDate, _ := v.ParseDate(in.BirthDate)
	return !birthDate.Equal(p.BirthDate) ||
		in.BirthPlace != p.BirthPlace ||
		in.Description != p.Description ||
		in.FirstName != p.FirstName ||
		in.LastName != p.LastName
}

// =============================================================================
// GENRE, LANGUAGE, COMPANY
// =============================================================================

// AdminGenre is the create/update input for a genre
type AdminGenre struct {
	ID   uint   `json:"id"`
	Name string `json:"name" validate:"required"`
}

func (in AdminGenre) Apply(_ *validation.Validator, g *database.Genre) {
	g.Name = in.Name
}

func (in AdminGenre) Differs(_ *validation.Validator, g *database.Genre) bool {
	return in.Name != g.Name
}

// AdminLanguage is the create/update input for a language
type AdminLanguage struct {
	ID   uint   `json:"id"`
	Name string `json:"name" validate:"required"`
}

func (in AdminLanguage) Apply(_ *validation.Validator, l *database.Language) {
	l.Name = in.Name
}

func (in AdminLanguage) Differs(_ *validation.Validator, l *database.Language) bool {
	return in.Name != l.Name
}

// AdminCompany is the create/update input for a company
type AdminCompany struct {
	ID   uint                 `json:"id"`
	Name string               `json:"name" validate:"required"`
	Type database.CompanyType `json:"type" validate:"enum"`
}

func (in AdminCompany) Apply(_ *validation.Validator, c *database.Company) {
	c.Name = in.Name
	c.Type = in.Type
}

func (in AdminCompany) Differs(_ *validation.Validator, c *database.Company) bool {
	return in.Name != c.Name || in.Type != c.Type
}

// =============================================================================
// CREW MEMBER
// =============================================================================

// AdminCrewMember is the create/update input for a crew credit. Actors need a
// character name; every other role must leave it null.
type AdminCrewMember struct {
	ID            uint              `json:"id"`
	CharacterName *string           `json:"characterName"`
	Role          database.CrewRole `json:"role" validate:"enum"`
	MovieID       uint              `json:"movieID" validate:"required"`
	PersonID      uint              `json:"personID" validate:"required"`
}

func (in AdminCrewMember) Check(_ *validation.Validator, errs validation.Errors) {
	if !in.Role.IsValid() {
		return
	}
	if in.Role == database.CrewRoleActor {
		validation.NullableText(errs, "CharacterName", in.CharacterName)
		return
	}
	validation.Null(errs, "CharacterName", in.CharacterName, MsgCharacterNameNotAllowed)
}

func (in AdminCrewMember) Apply(_ *validation.Validator, c *database.CrewMember) {
	c.CharacterName = nil
	if in.CharacterName != nil {
		name := *in.CharacterName
		c.CharacterName = &name
	}
	c.Role = in.Role
	c.MovieID = in.MovieID
	c.PersonID = in.PersonID
}

func (in AdminCrewMember) Differs(_ *validation.Validator, c *database.CrewMember) bool {
	return !equalNullable(in.CharacterName, c.CharacterName) ||
		in.Role != c.Role ||
		in.MovieID != c.MovieID ||
		in.PersonID != c.PersonID
}

func equalNullable(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
