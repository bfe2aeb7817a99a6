package model

// MeasurementType is a taxonomy term of the measurement_type vocabulary.
type MeasurementType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TID         int    `json:"tid"`
}

// Measurement is a measurement node with its garment values keyed by field
// name without the field_ prefix (e.g. "shirt_chest").
type Measurement struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	MeasurementType MeasurementType    `json:"measurement_type"`
	Measurements    map[string]float64 `json:"measurements"`
	Created         string             `json:"created"`
	Changed         string             `json:"changed"`
}

const (
	MeasurementResourceType     = "node--measurement"
	MeasurementTypeResourceType = "taxonomy_term--measurement_type"
	UserResourceType            = "user--user"

	MeasurementTypeRelationship = "field_measurement_type"
	FieldPrefix                 = "field_"
)

type MeasurementField struct {
	Key   string
	Label string
}

type FieldGroup struct {
	Name   string
	Fields []MeasurementField
}

// Garment names as seeded in the measurement_type vocabulary.
const (
	GarmentShalwarQameez = "Shalwar Qameez"
	GarmentShirt         = "Shirt"
	GarmentCoat          = "Coat"
	GarmentWaistcoat     = "Waistcoat"
)

// GarmentDescriptions are the term descriptions the vocabulary is seeded with.
var GarmentDescriptions = map[string]string{
	GarmentShalwarQameez: "Traditional Pakistani outfit consisting of Qameez (shirt) and Shalwar (loose trousers)",
	GarmentShirt:         "Formal or casual shirt",
	GarmentCoat:          "Formal coat or blazer",
	GarmentWaistcoat:     "Sleeveless garment worn over shirt",
}

// GarmentOrder lists garments in seeding order.
var GarmentOrder = []string{GarmentShalwarQameez, GarmentShirt, GarmentCoat, GarmentWaistcoat}

// GarmentFields is the measurement form layout for each garment.
var GarmentFields = map[string][]FieldGroup{
	GarmentShalwarQameez: {
		{Name: "qameez", Fields: []MeasurementField{
			{"qameez_length", "Qameez Length"},
			{"qameez_chest", "Qameez Chest"},
			{"qameez_waist", "Qameez Waist"},
			{"qameez_hip", "Qameez Hip"},
			{"qameez_shoulder", "Qameez Shoulder"},
			{"qameez_sleeve_length", "Qameez Sleeve Length"},
			{"qameez_neck", "Qameez Neck"},
			{"qameez_armhole", "Qameez Armhole"},
		}},
		{Name: "shalwar", Fields: []MeasurementField{
			{"shalwar_length", "Shalwar Length"},
			{"shalwar_waist", "Shalwar Waist"},
			{"shalwar_hip", "Shalwar Hip"},
			{"shalwar_thigh", "Shalwar Thigh"},
			{"shalwar_bottom", "Shalwar Bottom"},
			{"shalwar_knee", "Shalwar Knee"},
		}},
	},
	GarmentShirt: {
		{Name: "shirt", Fields: []MeasurementField{
			{"shirt_length", "Length"},
			{"shirt_chest", "Chest"},
			{"shirt_waist", "Waist"},
			{"shirt_shoulder", "Shoulder"},
			{"shirt_sleeve_length", "Sleeve Length"},
			{"shirt_neck", "Neck"},
			{"shirt_armhole", "Armhole"},
			{"shirt_cuff", "Cuff"},
		}},
	},
	GarmentCoat: {
		{Name: "coat", Fields: []MeasurementField{
			{"coat_length", "Length"},
			{"coat_chest", "Chest"},
			{"coat_waist", "Waist"},
			{"coat_hip", "Hip"},
			{"coat_shoulder", "Shoulder"},
			{"coat_sleeve_length", "Sleeve Length"},
			{"coat_neck", "Neck"},
			{"coat_armhole", "Armhole"},
			{"coat_lapel_width", "Lapel Width"},
		}},
	},
	GarmentWaistcoat: {
		{Name: "waistcoat", Fields: []MeasurementField{
			{"waistcoat_length", "Length"},
			{"waistcoat_chest", "Chest"},
			{"waistcoat_waist", "Waist"},
			{"waistcoat_shoulder", "Shoulder"},
			{"waistcoat_armhole", "Armhole"},
			{"waistcoat_neck", "Neck"},
		}},
	},
}

// FieldsFor flattens the field groups of a garment. Unknown garments yield nil.
func FieldsFor(garment string) []MeasurementField {
	var fields []MeasurementField
	for _, group := range GarmentFields[garment] {
		fields = append(fields, group.Fields...)
	}
	return fields
}

// IsMeasurementField reports whether key names a field of any garment.
func IsMeasurementField(key string) bool {
	for garment := range GarmentFields {
		for _, f := range FieldsFor(garment) {
			if f.Key == key {
				return true
			}
		}
	}
	return false
}
