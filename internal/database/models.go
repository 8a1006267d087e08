package database

import (
	"github.com/mantonx/filmadmin/internal/types"
)

// =============================================================================
// ENUMERATIONS
// =============================================================================

// CrewRole is the part a person plays in a movie.
type CrewRole int

const (
	CrewRoleActor CrewRole = iota
	CrewRoleDirector
	CrewRoleWriter
	CrewRoleEditor
	CrewRoleProducer
)

var crewRoleNames = [...]string{"Actor", "Director", "Writer", "Editor", "Producer"}

// IsValid reports whether r is one of the declared roles.
func (r CrewRole) IsValid() bool {
	return r >= CrewRoleActor && r <= CrewRoleProducer
}

func (r CrewRole) String() string {
	if !r.IsValid() {
		return "Unknown"
	}
	return crewRoleNames[r]
}

// CompanyType classifies a company's involvement with its movies.
type CompanyType int

const (
	CompanyTypeDistributor CompanyType = iota
	CompanyTypeProducer
)

// IsValid reports whether t is one of the declared company types.
func (t CompanyType) IsValid() bool {
	return t == CompanyTypeDistributor || t == CompanyTypeProducer
}

func (t CompanyType) String() string {
	switch t {
	case CompanyTypeDistributor:
		return "Distributor"
	case CompanyTypeProducer:
		return "Producer"
	default:
		return "Unknown"
	}
}

// =============================================================================
// CATALOG ENTITIES
// =============================================================================

// Movie is a single film in the catalog
type Movie struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null;index" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Length      int        `gorm:"not null" json:"length"` // minutes
	ReleaseDate types.Date `gorm:"not null" json:"releaseDate"`
	LanguageID  uint       `gorm:"not null;index" json:"languageID"`

	Language    *Language    `json:"language,omitempty"`
	Genres      []Genre      `gorm:"many2many:genre_movies" json:"genres,omitempty"`
	Companies   []Company    `gorm:"many2many:company_movies" json:"companies,omitempty"`
	CrewMembers []CrewMember `gorm:"constraint:OnDelete:CASCADE" json:"crewMembers,omitempty"`
}

// Person is anyone credited in a crew
type Person struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	BirthDate   types.Date `gorm:"not null" json:"birthDate"`
	BirthPlace  string     `gorm:"not null" json:"birthPlace"`
	Description string     `gorm:"type:text;not null" json:"description"`
	FirstName   string     `gorm:"not null" json:"firstName"`
	LastName    string     `gorm:"not null;index" json:"lastName"`

	Roles []CrewMember `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"roles,omitempty"`
}

// Genre classifies movies, e.g. "Comedy"
type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`

	Movies []Movie `gorm:"many2many:genre_movies" json:"movies,omitempty"`
}

// Language is the spoken language of a movie
type Language struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`

	Movies []Movie `gorm:"constraint:OnDelete:RESTRICT" json:"movies,omitempty"`
}

// Company is a distributor or producer of movies
type Company struct {
	ID   uint        `gorm:"primaryKey" json:"id"`
	Name string      `gorm:"not null" json:"name"`
	Type CompanyType `gorm:"not null;default:0" json:"type"`

	Movies []Movie `gorm:"many2many:company_movies" json:"movies,omitempty"`
}

// CrewMember credits a person with a role in a movie. CharacterName is set
// for actors only.
type CrewMember struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	CharacterName *string  `json:"characterName"`
	Role          CrewRole `gorm:"not null;default:0" json:"role"`
	MovieID       uint     `gorm:"not null;index" json:"movieID"`
	PersonID      uint     `gorm:"not null;index" json:"personID"`

	Movie  *Movie  `json:"movie,omitempty"`
	Person *Person `json:"person,omitempty"`
}

// =============================================================================
// JOIN TABLES
// =============================================================================

// GenreMovie links a genre to a movie. The composite key allows one row per pair.
type GenreMovie struct {
	GenreID uint `gorm:"primaryKey;autoIncrement:false" json:"genreID"`
	MovieID uint `gorm:"primaryKey;autoIncrement:false;index" json:"movieID"`
}

// CompanyMovie links a company to a movie.
type CompanyMovie struct {
	CompanyID uint `gorm:"primaryKey;autoIncrement:false" json:"companyID"`
	MovieID   uint `gorm:"primaryKey;autoIncrement:false;index" json:"movieID"`
}

// AllModels lists every table managed by Migrate, parents first.
func AllModels() []interface{} {
	return []interface{}{
		&Language{},
		&Genre{},
		&Company{},
		&Person{},
		&Movie{},
		&CrewMember{},
		&GenreMovie{},
		&CompanyMovie{},
	}
}
