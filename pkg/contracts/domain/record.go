package domain

// Field is a single named value of a ContextualRecord.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ContextualRecord is one output row: a sample flattened together with its
// context windows. Field order is insertion order and drives CSV column order.
// A record is immutable once constructed.
type ContextualRecord struct {
	fields []Field
	index  map[string]int
}

// NewContextualRecord builds a record from fields in the given order. A repeated
// name keeps its first position and takes the last value.
func NewContextualRecord(fields ...Field) ContextualRecord {
	r := ContextualRecord{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if i, ok := r.index[f.Name]; ok {
			r.fields[i].Value = f.Value
			continue
		}
		r.index[f.Name] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return r
}

// Len returns the number of fields.
func (r ContextualRecord) Len() int {
	return len(r.fields)
}

// Get returns the value of the named field.
func (r ContextualRecord) Get(name string) (string, bool) {
	i, ok := r.index[name]
	if !ok {
		return "", false
	}
	return r.fields[i].Value, true
}

// Fields returns a copy of the record's fields in order.
func (r ContextualRecord) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// CSVHeader returns the field names in order.
func (r ContextualRecord) CSVHeader() []string {
	h := make([]string, len(r.fields))
	for i, f := range r.fields {
		h[i] = f.Name
	}
	return h
}

// CSVRow returns the field values in the record's own order.
func (r ContextualRecord) CSVRow() []string {
	row := make([]string, len(r.fields))
	for i, f := range r.fields {
		row[i] = f.Value
	}
	return row
}

// RowFor returns the values aligned to header. Names the record does not
// carry become empty cells.
func (r ContextualRecord) RowFor(header []string) []string {
	row := make([]string, len(header))
	for i, name := range header {
		row[i], _ = r.Get(name)
	}
	return row
}

// ContextualRecordSequence holds records in source index order.
type ContextualRecordSequence []ContextualRecord
