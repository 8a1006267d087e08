package models

import (
	"github.com/mantonx/filmadmin/internal/database"
	"github.com/mantonx/filmadmin/internal/types"
)

// GenreModel is the read projection of a genre
type GenreModel struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// LanguageModel is the read projection of a language
type LanguageModel struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CompanySummary is a company as it appears inside a movie
type CompanySummary struct {
	ID   uint                 `json:"id"`
	Name string               `json:"name"`
	Type database.CompanyType `json:"type"`
}

// MovieSummary is a movie as it appears inside a company
type MovieSummary struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	ReleaseDate types.Date `json:"releaseDate"`
	Length      int        `json:"length"`
	LanguageID  uint       `json:"languageID"`
}

// CrewMemberModel is the read projection of a crew credit
type CrewMemberModel struct {
	ID            uint              `json:"id"`
	CharacterName *string           `json:"characterName"`
	Role          database.CrewRole `json:"role"`
	MovieID       uint              `json:"movieID"`
	PersonID      uint              `json:"personID"`
}

// MovieModel is the read projection of a movie with its related rows
type MovieModel struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Length      int               `json:"length"`
	ReleaseDate types.Date        `json:"releaseDate"`
	LanguageID  uint              `json:"languageID"`
	Language    *LanguageModel    `json:"language"`
	Genres      []GenreModel      `json:"genres"`
	Companies   []CompanySummary  `json:"companies"`
	CrewMembers []CrewMemberModel `json:"crewMembers"`
}

// PersonModel is the read projection of a person with the roles they played
type PersonModel struct {
	ID          uint              `json:"id"`
	BirthDate   types.Date        `json:"birthDate"`
	BirthPlace  string            `json:"birthPlace"`
	Description string            `json:"description"`
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	Roles       []CrewMemberModel `json:"roles"`
}

// CompanyModel is the read projection of a company with its movies
type CompanyModel struct {
	ID     uint                 `json:"id"`
	Name   string               `json:"name"`
	Type   database.CompanyType `json:"type"`
	Movies []MovieSummary       `json:"movies"`
}

func NewGenreModel(g *database.Genre) GenreModel {
	return GenreModel{ID: g.ID, Name: g.Name}
}

func NewLanguageModel(l *database.Language) LanguageModel {
	return LanguageModel{ID: l.ID, Name: l.Name}
}

func NewCrewMemberModel(c *database.CrewMember) CrewMemberModel {
	m := CrewMemberModel{
		ID:       c.ID,
		Role:     c.Role,
		MovieID:  c.MovieID,
		PersonID: c.PersonID,
	}
	if c.CharacterName != nil {
		name := *c.CharacterName
		m.CharacterName = &name
	}
	return m
}

func NewMovieModel(m *database.Movie) MovieModel {
	out := MovieModel{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Length:      m.Length,
		ReleaseDate: m.ReleaseDate,
		LanguageID:  m.LanguageID,
		Genres:      make([]GenreModel, 0, len(m.Genres)),
		Companies:   make([]CompanySummary, 0, len(m.Companies)),
		CrewMembers: make([]CrewMemberModel, 0, len(m.CrewMembers)),
	}
	if m.Language != nil {
		language := NewLanguageModel(m.Language)
		out.Language = &language
	}
	for i := range m.Genres {
		out.Genres = append(out.Genres, NewGenreModel(&m.Genres[i]))
	}
	for _, c := range m.Companies {
		out.Companies = append(out.Companies, CompanySummary{ID: c.ID, Name: c.Name, Type: c.Type})
	}
	for i := range m.CrewMembers {
		out.CrewMembers = append(out.CrewMembers, NewCrewMemberModel(&m.CrewMembers[i]))
	}
	return out
}

func NewPersonModel(p *database.Person) PersonModel {
	out := PersonModel{
		ID:          p.ID,
		BirthDate:   p.BirthDate,
		BirthPlace:  p.BirthPlace,
		Description: p.Description,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Roles:       make([]CrewMemberModel, 0, len(p.Roles)),
	}
	for i := range p.Roles {
		out.Roles = append(out.Roles, NewCrewMemberModel(&p.Roles[i]))
	}
	return out
}

func NewCompanyModel(c *database.Company) CompanyModel {
	out := CompanyModel{
		ID:     c.ID,
		Name:   c.Name,
		Type:   c.Type,
		Movies: make([]MovieSummary, 0, len(c.Movies)),
	}
	for _, m := range c.Movies {
		out.Movies = append(out.Movies, MovieSummary{
			ID:          m.ID,
			Title:       m.Title,
			ReleaseDate: m.ReleaseDate,
			Length:      m.Length,
			LanguageID:  m.LanguageID,
		})
	}
	return out
}
