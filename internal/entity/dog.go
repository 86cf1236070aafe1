package entity

import (
	"net/url"
	"strconv"
	"time"
)

type DogStatus string

const (
	DogAvailable   DogStatus = "available"
	DogFostered    DogStatus = "fostered"
	DogAdopted     DogStatus = "adopted"
	DogMedicalCare DogStatus = "medical_care"
)

type DogSize string

const (
	DogSmall      DogSize = "small"
	DogMedium     DogSize = "medium"
	DogLarge      DogSize = "large"
	DogExtraLarge DogSize = "extra_large"
)

type DogGender string

const (
	DogMale   DogGender = "male"
	DogFemale DogGender = "female"
)

// Dog is a listing as returned by /dogs. Age is in months.
type Dog struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Breed         string     `json:"breed,omitempty"`
	Age           *int       `json:"age,omitempty"`
	Size          DogSize    `json:"size,omitempty"`
	Gender        DogGender  `json:"gender,omitempty"`
	Weight        *float64   `json:"weight,omitempty"`
	Location      string     `json:"location,omitempty"`
	Description   string     `json:"description,omitempty"`
	MedicalInfo   string     `json:"medical_info,omitempty"`
	BehaviorNotes string     `json:"behavior_notes,omitempty"`
	GoodWithKids  bool       `json:"good_with_kids"`
	GoodWithDogs  bool       `json:"good_with_dogs"`
	GoodWithCats  bool       `json:"good_with_cats"`
	NeedsYard     bool       `json:"needs_yard"`
	Status        DogStatus  `json:"status,omitempty"`
	OwnerID       *int64     `json:"owner_id,omitempty"`
	Photos        []string   `json:"photos,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// DogInput is the create/update attribute bag. Nil fields are omitted so
// the same type serves partial updates.
type DogInput struct {
	Name          *string    `json:"name,omitempty"`
	Breed         *string    `json:"breed,omitempty"`
	Age           *int       `json:"age,omitempty"`
	Size          *DogSize   `json:"size,omitempty"`
	Gender        *DogGender `json:"gender,omitempty"`
	Weight        *float64   `json:"weight,omitempty"`
	Location      *string    `json:"location,omitempty"`
	Description   *string    `json:"description,omitempty"`
	MedicalInfo   *string    `json:"medical_info,omitempty"`
	BehaviorNotes *string    `json:"behavior_notes,omitempty"`
	Status        *DogStatus `json:"status,omitempty"`
	GoodWithKids  *bool      `json:"good_with_kids,omitempty"`
	GoodWithDogs  *bool      `json:"good_with_dogs,omitempty"`
	GoodWithCats  *bool      `json:"good_with_cats,omitempty"`
	NeedsYard     *bool      `json:"needs_yard,omitempty"`
}

// DogQuery holds the list/search filters. Empty fields are not sent.
type DogQuery struct {
	Query    string
	Breed    string
	Size     DogSize
	Gender   DogGender
	Location string
	Status   DogStatus
	Skip     int
	Limit    int
}

// Photo is the response of a photo upload.
type Photo struct {
	ID  int64  `json:"id,omitempty"`
	URL string `json:"url"`
}

// Poster is a binary adoption poster.
type Poster struct {
	ContentType string
	Filename    string
	Data        []byte
}

// Values encodes the non-empty filters as query parameters.
func (q DogQuery) Values() url.Values {
	v := url.Values{}
	setString(v, "q", q.Query)
	setString(v, "breed", q.Breed)
	setString(v, "size", string(q.Size))
	setString(v, "gender", string(q.Gender))
	setString(v, "location", q.Location)
	setString(v, "status", string(q.Status))
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func setString(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}
