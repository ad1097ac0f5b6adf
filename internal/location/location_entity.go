package location

type State struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"not null"`
	Code string `gorm:"size:2;not null;uniqueIndex"`
}

func (State) TableName() string { return "state" }

type City struct {
	ID      int64  `gorm:"primaryKey"`
	Name    string `gorm:"not null"`
	StateID int64  `gorm:"not null"`
}

func (City) TableName() string { return "city" }
