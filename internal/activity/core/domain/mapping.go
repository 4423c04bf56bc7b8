package domain

// ColumnMapping maps a logical field to the source column that carries it.
type ColumnMapping map[Field]string

// DefaultColumnMapping matches the schema of the production activity table.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		FieldDate:           "fecha",
		FieldHour:           "hora",
		FieldOrigin:         "origen",
		FieldLocality:       "localidad",
		FieldModel:          "modelo",
		FieldTag:            "etiqueta",
		FieldConcept:        "concepto",
		FieldLatitude:       "latitud",
		FieldLongitude:      "longitud",
		FieldTotalDay:       "total_dia",
		FieldTotalApp:       "total_app",
		FieldTotalByConcept: "totalporconcepto",
		FieldTotalTag:       "total_etiqueta",
		FieldUserID:         "numero",
		FieldUniqueUsers:    "Usuarios Únicos",
	}
}

// Merge returns a copy of m with the non-empty entries of override applied.
func (m ColumnMapping) Merge(override map[Field]string) ColumnMapping {
	out := make(ColumnMapping, len(m)+len(override))
	for f, c := range m {
		out[f] = c
	}
	for f, c := range override {
		if c != "" {
			out[f] = c
		}
	}
	return out
}

// Resolve returns the column index of every mapped field found in columns.
func (m ColumnMapping) Resolve(columns []string) map[Field]int {
	pos := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := pos[c]; !dup {
			pos[c] = i
		}
	}
	out := make(map[Field]int, len(m))
	for f, c := range m {
		if i, ok := pos[c]; ok {
			out[f] = i
		}
	}
	return out
}
