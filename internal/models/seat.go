package models

import "time"

type Seat struct {
	ID        int64     `yaml:"id" json:"id"`
	Name      string    `yaml:"name" json:"name"`
	X         int       `yaml:"x" json:"x"`
	Y         int       `yaml:"y" json:"y"`
	CreatedAt time.Time `yaml:"-" json:"created_at"`
}
