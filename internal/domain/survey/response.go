package survey

// AxisAnswer is one respondent's answer for one axis. Nil pointers mean absent.
type AxisAnswer struct {
	LevelRaw *string
	Level    *int
	Strength *string
	Weakness *string
}

// Response is the flat, read-side view of one stored survey document.
// Axes is indexed like the Axes catalog.
type Response struct {
	ID          string
	Group       string
	Revenue     string
	Headcount   string
	ITHeadcount string
	Axes        [AxisCount]AxisAnswer
}

// Dimension selects one categorical metadata field.
type Dimension string

const (
	DimensionGroup       Dimension = "groupe"
	DimensionRevenue     Dimension = "ca"
	DimensionHeadcount   Dimension = "effectif"
	DimensionITHeadcount Dimension = "effectif_dsi"
)

var Dimensions = []Dimension{DimensionGroup, DimensionRevenue, DimensionHeadcount, DimensionITHeadcount}

// ParseDimension reports whether raw names a known dimension.
func ParseDimension(raw string) (Dimension, bool) {
	for _, d := range Dimensions {
		if string(d) == raw {
			return d, true
		}
	}
	return "", false
}

// Value returns r's value for the dimension, "" when unknown or empty.
func (d Dimension) Value(r *Response) string {
	if r == nil {
		return ""
	}
	switch d {
	case DimensionGroup:
		return r.Group
	case DimensionRevenue:
		return r.Revenue
	case DimensionHeadcount:
		return r.Headcount
	case DimensionITHeadcount:
		return r.ITHeadcount
	default:
		return ""
	}
}
