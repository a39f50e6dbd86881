package domain

import "time"

// PlaceCategory identifies which autocomplete list a place came from.
type PlaceCategory string

const (
	CategoryRailway PlaceCategory = "railway"
	CategoryBus     PlaceCategory = "bus"
	CategorySpot    PlaceCategory = "spot"
)

// Place is a single autocomplete candidate. Value object, produced fresh
// per suggest request; there is no persisted identity.
type Place struct {
	Name       string
	Category   PlaceCategory
	Prefecture string
	City       string
	CityCode   string
	Address    string
	Latitude   float64
	Longitude  float64
	Reading    string
}

// SuggestResult holds the three independently-ranked candidate lists
// returned by the suggest endpoint. Any list may be empty.
type SuggestResult struct {
	Railway []Place
	Bus     []Place
	Spot    []Place
}

// RouteSearchResult is the typed form of one scraped search response.
// Routes preserve source document order; that order is the only ordering
// contract.
type RouteSearchResult struct {
	CapturedAt time.Time
	Routes     []Route
}

// Route is one candidate itinerary. RouteNumber is taken verbatim from the
// source and never reassigned, including after truncation.
type Route struct {
	RouteNumber     int
	DepartureTime   string
	ArrivalTime     string
	TotalMinutes    *int
	TransferCount   *int
	TotalFare       *int
	TotalDistanceKm *float64
	Tags            []Tag
	CO2             *CO2Report
	Segments        []Segment
	Notices         []Notice
}

// CO2Report carries the emission figures some routes include.
type CO2Report struct {
	Amount        string
	Comparison    string
	ReductionRate string
}

// TagKind classifies a route tag.
type TagKind string

const (
	TagFast        TagKind = "fast"
	TagComfortable TagKind = "comfortable"
	TagCheap       TagKind = "cheap"
	TagCar         TagKind = "car"
	TagOther       TagKind = "other"
)

// Tag marks a route property. Label is used verbatim when Kind is TagOther.
type Tag struct {
	Kind  TagKind
	Label string
}

// Notice is an advisory attached to a route.
type Notice struct {
	Title       string
	Description string
}

// SegmentKind discriminates the Segment union.
type SegmentKind string

const (
	SegmentStation   SegmentKind = "station"
	SegmentTransport SegmentKind = "transport"
)

// Segment is one entry of a route itinerary: either a stop (StationSegment)
// or a leg between stops (TransportSegment). The parser tolerates arbitrary
// sequences; segments are not required to alternate.
type Segment interface {
	Kind() SegmentKind
}

// StationRole says where in the itinerary a station appears.
type StationRole string

const (
	RoleStart    StationRole = "start"
	RoleEnd      StationRole = "end"
	RoleTransfer StationRole = "transfer"
	RoleOther    StationRole = "other"
)

// StationSegment is a stop in the itinerary.
type StationSegment struct {
	Role     StationRole
	Name     string
	Platform string
	Weather  string
}

func (StationSegment) Kind() SegmentKind { return SegmentStation }

// TransportMode identifies the vehicle of a transport segment.
type TransportMode string

const (
	ModeTrain  TransportMode = "train"
	ModeSubway TransportMode = "subway"
	ModeBus    TransportMode = "bus"
	ModeCar    TransportMode = "car"
	ModeTaxi   TransportMode = "taxi"
	ModeWalk   TransportMode = "walk"
)

// TransportSegment is a leg between stops.
type TransportSegment struct {
	Mode            TransportMode
	LineName        string
	DepartureTime   string
	ArrivalTime     string
	DurationMinutes *int
	Fare            *int
	Distance        string
}

func (TransportSegment) Kind() SegmentKind { return SegmentTransport }
