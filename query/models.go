package query

// Ref is a nested sub-object pointing at a related entity. Label may be empty
// when the related node carries none.
type Ref struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// ArtworkSummary is one row of an artwork listing. Nested refs are nil when
// the relation is absent from the graph.
type ArtworkSummary struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title,omitempty"`
	Created    string `json:"created,omitempty"`
	Image      string `json:"image,omitempty"`

	Artist   *Ref `json:"artist,omitempty"`
	Location *Ref `json:"location,omitempty"`
	Type     *Ref `json:"type,omitempty"`
	Subject  *Ref `json:"subject,omitempty"`
	Material *Ref `json:"material,omitempty"`
}

// Artwork is the full record for one artwork.
type Artwork struct {
	ArtworkSummary

	Description string `json:"description,omitempty"`
	Extent      string `json:"extent,omitempty"`

	Provider  *Ref `json:"provider,omitempty"`
	Institute *Ref `json:"institute,omitempty"`
}

// Artist is the full record for one agent, works included.
type Artist struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AuthorityLink string `json:"authority_link,omitempty"`
	Works         []Ref  `json:"works"`
}

// ArtistSummary is one row of an artist listing with its work count.
type ArtistSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Works int    `json:"works"`
}

// Location is one place node with its name variants and work count.
type Location struct {
	ID            string   `json:"id"`
	Names         []string `json:"names"`
	AuthorityLink string   `json:"authority_link,omitempty"`
	Works         int      `json:"works"`
}

// LocationSummary is one row of the events-per-place distribution.
type LocationSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Events int    `json:"events"`
}

// Event is one provenance activity.
type Event struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Date      string `json:"date,omitempty"`
	Artwork   *Ref   `json:"artwork,omitempty"`
	Artist    *Ref   `json:"artist,omitempty"`
	Location  *Ref   `json:"location,omitempty"`
	Provider  string `json:"provider,omitempty"`
	Institute string `json:"institute,omitempty"`
}

// Statistics is the graph-wide overview.
type Statistics struct {
	Artworks   int `json:"artworks"`
	Artists    int `json:"artists"`
	Locations  int `json:"locations"`
	Events     int `json:"events"`
	Statements int `json:"statements"`
}

// TypeCount is one row of the artwork-by-type distribution.
type TypeCount struct {
	Type  TypeName `json:"type"`
	Count int      `json:"count"`
}
