package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// StringList is stored as a JSON array and is never null: a nil or
// unreadable value scans and serializes as an empty list.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		*l = StringList{}
		return nil
	}
	*l = items
	return nil
}

func (StringList) GormDataType() string {
	return "text"
}

type JobPosting struct {
	ID            int        `json:"id"`
	SourceName    string     `json:"source_name"`
	SourceURL     string     `json:"source_url" gorm:"uniqueIndex;size:500"`
	Title         string     `json:"title"`
	Company       string     `json:"company"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	Region        string     `json:"region"`
	Location      string     `json:"location"`
	Latitude      *float64   `json:"latitude"`
	Longitude     *float64   `json:"longitude"`
	IsRemote      bool       `json:"is_remote"`
	SalaryText    string     `json:"salary_text"`
	SalaryMin     *int       `json:"salary_min"`
	SalaryMax     *int       `json:"salary_max"`
	Currency      string     `json:"currency" gorm:"size:10"`
	ContractTypes StringList `json:"contract_types"`
	WorkTime      string     `json:"work_time"`
	PostedAt      *time.Time `json:"posted_at"`
	Duties        StringList `json:"duties"`
	Requirements  StringList `json:"requirements"`
	Benefits      StringList `json:"benefits"`
	Description   string     `json:"description"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// BeforeSave derives location from city and region when the scraper did not
// set it explicitly, and guarantees list fields are never persisted as null.
func (j *JobPosting) BeforeSave(*gorm.DB) error {
	if j.Location == "" {
		var bits []string
		for _, b := range []string{j.City, j.Region} {
			if b != "" {
				bits = append(bits, b)
			}
		}
		j.Location = strings.Join(bits, ", ")
	}

	for _, list := range []*StringList{&j.ContractTypes, &j.Duties, &j.Requirements, &j.Benefits} {
		if *list == nil {
			*list = StringList{}
		}
	}
	return nil
}
