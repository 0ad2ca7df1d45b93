package survey

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// CollectionName is the backing table for survey documents.
const CollectionName = "survey_responses"

// Document is one stored survey response. Payload holds a DocumentPayload.
type Document struct {
	ID        string         `gorm:"column:id;primaryKey" json:"id"`
	Payload   datatypes.JSON `gorm:"column:payload;type:jsonb;not null" json:"payload"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Document) TableName() string { return CollectionName }

type DocumentPayload struct {
	ID       string                       `json:"id"`
	Metadata DocumentMetadata             `json:"metadata"`
	Axes     map[string]DocumentAxisEntry `json:"axes"`
}

type DocumentMetadata struct {
	Group       string `json:"groupe"`
	Revenue     string `json:"ca"`
	Headcount   string `json:"effectif_entreprise"`
	ITHeadcount string `json:"effectif_dsi"`
}

type DocumentAxisEntry struct {
	Level    *int    `json:"niveau"`
	LevelRaw *string `json:"niveau_raw"`
	Strength *string `json:"force"`
	Weakness *string `json:"faiblesse"`
}

// NewDocument encodes r into its stored form, keying axes by short name.
func NewDocument(r *Response) (*Document, error) {
	if r == nil {
		return nil, fmt.Errorf("nil response")
	}
	payload := DocumentPayload{
		ID: r.ID,
		Metadata: DocumentMetadata{
			Group:       r.Group,
			Revenue:     r.Revenue,
			Headcount:   r.Headcount,
			ITHeadcount: r.ITHeadcount,
		},
		Axes: make(map[string]DocumentAxisEntry, AxisCount),
	}
	for i, axis := range Axes {
		a := r.Axes[i]
		payload.Axes[axis.Short] = DocumentAxisEntry{
			Level:    a.Level,
			LevelRaw: a.LevelRaw,
			Strength: a.Strength,
			Weakness: a.Weakness,
		}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode document %s: %w", r.ID, err)
	}
	return &Document{ID: r.ID, Payload: datatypes.JSON(raw)}, nil
}

// Response decodes the stored payload. Missing metadata becomes "" and
// missing axes become all-absent answers.
func (d *Document) Response() (*Response, error) {
	var payload DocumentPayload
	if len(d.Payload) > 0 {
		if err := json.Unmarshal(d.Payload, &payload); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", d.ID, err)
		}
	}
	id := payload.ID
	if id == "" {
		id = d.ID
	}
	r := &Response{
		ID:          id,
		Group:       payload.Metadata.Group,
		Revenue:     payload.Metadata.Revenue,
		Headcount:   payload.Metadata.Headcount,
		ITHeadcount: payload.Metadata.ITHeadcount,
	}
	for i, axis := range Axes {
		entry, ok := payload.Axes[axis.Short]
		if !ok {
			continue
		}
		r.Axes[i] = AxisAnswer{
			LevelRaw: entry.LevelRaw,
			Level:    entry.Level,
			Strength: entry.Strength,
			Weakness: entry.Weakness,
		}
	}
	return r, nil
}
