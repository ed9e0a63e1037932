package photoprism

// Photo represents a PhotoPrism photo as returned by the search API
type Photo struct {
	UID          string  `json:"UID"`
	Title        string  `json:"Title"`
	TakenAt      string  `json:"TakenAt"`
	TakenAtLocal string  `json:"TakenAtLocal"`
	Type         string  `json:"Type"`
	Lat          float64 `json:"Lat"`
	Lng          float64 `json:"Lng"`
	CellID       string  `json:"CellID"` // place cell reference ("zz" when unknown)
	PlaceLabel   string  `json:"PlaceLabel"`
	Country      string  `json:"Country"`
	Hash         string  `json:"Hash"`
	Width        int     `json:"Width"`
	Height       int     `json:"Height"`
	Iso          int     `json:"Iso"`
	Quality      int     `json:"Quality"`
}

// Album represents a PhotoPrism album
type Album struct {
	UID         string `json:"UID"`
	Title       string `json:"Title"`
	Description string `json:"Description"`
	Favorite    bool   `json:"Favorite"`
	PhotoCount  int    `json:"PhotoCount"`
	Type        string `json:"Type"`
	CreatedAt   string `json:"CreatedAt"`
	UpdatedAt   string `json:"UpdatedAt"`
}

// Subject represents a PhotoPrism person/subject
type Subject struct {
	UID        string `json:"UID"`
	Name       string `json:"Name"`
	Slug       string `json:"Slug"`
	PhotoCount int    `json:"PhotoCount"`
	Favorite   bool   `json:"Favorite"`
	Hidden     bool   `json:"Hidden"`
	Excluded   bool   `json:"Excluded"`
}
