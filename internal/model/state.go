package model

// State represents a US state used to group cities for browsing.
// States are created lazily the first time a venue or artist in
// that state is listed.  This struct corresponds to a row in the
// `states` table.
//
// Fields:
//
//	ID   – primary key identifier.
//	Name – unique state name.
type State struct {
	ID   uint64 // states.id
	Name string // states.name
}
