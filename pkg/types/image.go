package types

// MatchRecord is one sparse cell of the match image: motif MotifID fired
// at Position of DocumentID. Absence of a record means the motif did not
// fire there.
type MatchRecord struct {
	DocumentID string `json:"document_id" yaml:"document_id"`
	Position   int    `json:"position" yaml:"position"`
	MotifID    string `json:"motif_id" yaml:"motif_id"`
}

// Point returns the record's position as a point.
func (r MatchRecord) Point() Point {
	return Point{DocumentID: r.DocumentID, Position: r.Position}
}
