// Package musicbrainz provides a client for the MusicBrainz API.
package musicbrainz

// Recording is one candidate match from a recording search.
type Recording struct {
	ID             string
	Title          string
	Artist         string
	Album          string
	ReleaseID      string
	Date           string
	TrackNumber    int
	TotalTracks    int
	LengthMS       int
	Score          int
	Disambiguation string
}

// Release is one candidate match from a release (album) search.
type Release struct {
	ID         string
	Title      string
	Artist     string
	Date       string
	Country    string
	TrackCount int
	Score      int
}

// ReleaseTrack is a track on a release, in medium order.
type ReleaseTrack struct {
	Position    int
	Title       string
	Artist      string
	RecordingID string
	LengthMS    int
}

// ReleaseDetails contains full release information including tracks.
type ReleaseDetails struct {
	Release
	Tracks []ReleaseTrack
}

// SearchQuery holds the structured fields of a metadata search. Empty fields
// are omitted from the generated Lucene query.
type SearchQuery struct {
	Title  string
	Artist string
	Album  string
}

// raw wire structs below; converted to the domain types above.

type recordingSearchResponse struct {
	Recordings []recordingResult `json:"recordings"`
}

type recordingResult struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Score          int             `json:"score"`
	Length         int             `json:"length"`
	Disambiguation string          `json:"disambiguation"`
	ArtistCredit   []artistCredit  `json:"artist-credit"`
	Releases       []releaseResult `json:"releases"`
}

type artistCredit struct {
	Name   string `json:"name"`
	Artist struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"artist"`
	JoinPhrase string `json:"joinphrase"`
}

type releaseResult struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Score        int            `json:"score"`
	Date         string         `json:"date"`
	Country      string         `json:"country"`
	ArtistCredit []artistCredit `json:"artist-credit"`
	Media        []medium       `json:"media"`
}

type medium struct {
	Position    int     `json:"position"`
	Format      string  `json:"format"`
	TrackCount  int     `json:"track-count"`
	TrackOffset int     `json:"track-offset"`
	Tracks      []track `json:"tracks"`
}

type track struct {
	ID           string         `json:"id"`
	Position     int            `json:"position"`
	Number       string         `json:"number"`
	Title        string         `json:"title"`
	Length       int            `json:"length"`
	Recording    *recording     `json:"recording"`
	ArtistCredit []artistCredit `json:"artist-credit"`
}

type recording struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type releaseSearchResponse struct {
	Releases []releaseResult `json:"releases"`
}

type releaseDetailsResponse struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Date         string         `json:"date"`
	Country      string         `json:"country"`
	ArtistCredit []artistCredit `json:"artist-credit"`
	Media        []medium       `json:"media"`
}
