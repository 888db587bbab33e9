package tag

type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:120;not null" json:"name"`
}

// Count is a tag together with the number of posts carrying it.
type Count struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Posts int64  `json:"posts"`
}
