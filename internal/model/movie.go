package model

// Movie represents a film record persisted in the `filmes` table.  The
// database owns the identifier: it is assigned on insert and never changes
// afterwards.
//
// Fields:
//  ID       – primary key identifier, auto-incremented by the store.
//  Title    – film title, required.
//  Genre    – film genre, required, at most 50 characters.
//  Duration – running time in minutes, always positive.
type Movie struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`   // filmes.id
	Title    string `gorm:"type:varchar(255);not null"` // filmes.title
	Genre    string `gorm:"type:varchar(50);not null"`  // filmes.genre
	Duration int    `gorm:"not null"`                   // filmes.duration
}

// TableName keeps the table name stable regardless of gorm's pluralisation rules.
func (Movie) TableName() string {
	return "filmes"
}
